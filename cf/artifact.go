package cf

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rushteam/venuekit/core"
)

const (
	artifactMagic   = "VKCF"
	artifactVersion = 1
)

// Artifact 是一次离线训练产出的全部模型数据：
// 用户/物品索引（string id -> 矩阵行偏移）与对应的隐向量矩阵。
//
// 不变量：len(UserFactors) == len(UserIndex)，物品侧同理；
// 任何越界的偏移在打分时按"无分数"处理，绝不 panic。
type Artifact struct {
	Factors     int
	UserIndex   map[string]int
	ItemIndex   map[string]int
	UserFactors [][]float64
	ItemFactors [][]float64
}

// Validate 校验索引与矩阵的对应关系。
func (a *Artifact) Validate() error {
	if a == nil {
		return core.NewDomainError(core.ModuleCF, core.ErrorCodeInvalidInput, "cf: nil artifact")
	}
	if len(a.UserFactors) != len(a.UserIndex) {
		return core.NewDomainError(core.ModuleCF, core.ErrorCodeInvalidInput,
			fmt.Sprintf("cf: user factors %d != user index %d", len(a.UserFactors), len(a.UserIndex)))
	}
	if len(a.ItemFactors) != len(a.ItemIndex) {
		return core.NewDomainError(core.ModuleCF, core.ErrorCodeInvalidInput,
			fmt.Sprintf("cf: item factors %d != item index %d", len(a.ItemFactors), len(a.ItemIndex)))
	}
	return nil
}

// artifactBlob 是落盘格式：magic + 版本号 + 载荷，整体 gob 编码。
type artifactBlob struct {
	Magic   string
	Version int
	Payload Artifact
}

// WriteArtifact 将 artifact 原子地写入 path：
// 先写临时文件再 rename 就位，读方只会看到旧版或完整的新版，不会看到半截。
func WriteArtifact(path string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	blob := artifactBlob{Magic: artifactMagic, Version: artifactVersion, Payload: *a}
	if err := gob.NewEncoder(&buf).Encode(&blob); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// ReadArtifact 从 path 读取并校验 artifact。
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var blob artifactBlob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if blob.Magic != artifactMagic {
		return nil, core.NewDomainError(core.ModuleCF, core.ErrorCodeInvalidInput, "cf: bad artifact magic")
	}
	if blob.Version != artifactVersion {
		return nil, core.NewDomainError(core.ModuleCF, core.ErrorCodeNotSupported,
			fmt.Sprintf("cf: unsupported artifact version %d", blob.Version))
	}

	a := blob.Payload
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// watermarkMeta 是 artifact 的伴生元数据：上次训练时刻的正向交互计数。
type watermarkMeta struct {
	TrainedPosCount int `json:"trained_pos_count"`
}

// ReadWatermark 读取水位线；文件缺失或损坏时按 0 处理。
func ReadWatermark(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var meta watermarkMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return 0
	}
	return meta.TrainedPosCount
}

// WriteWatermark 持久化水位线（仅训练成功时调用）。
func WriteWatermark(path string, count int) error {
	data, err := json.Marshal(watermarkMeta{TrainedPosCount: count})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
