package cf

import (
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pkg/utils"
)

// OfflineScorer 持有离线训练产出的因子矩阵，对 (user, item) 打分为
// 两个隐向量的点积。
//
// 新鲜度：每次打分前对比 artifact 的磁盘修改时间与上次加载时间，
// 不一致则同步重载——模型对变更最终一致，每次变更至多一次旧读。
// 新鲜度检查是该组件自己的方法（EnsureFresh），不是进程级隐式全局行为。
type OfflineScorer struct {
	path string

	mu     sync.Mutex
	art    *Artifact
	loaded bool
	mtime  time.Time
}

// NewOfflineScorer 创建一个指向 path 的离线打分器并尝试首次加载。
// artifact 不存在不算错误：Available() 为 false，调用方走在线回退。
func NewOfflineScorer(path string) *OfflineScorer {
	s := &OfflineScorer{path: path}
	s.mu.Lock()
	s.reload()
	s.mu.Unlock()
	return s
}

// reload 在持锁状态下重新读取 artifact；读失败时保留旧模型。
func (s *OfflineScorer) reload() {
	info, err := os.Stat(s.path)
	if err != nil {
		return
	}
	art, err := ReadArtifact(s.path)
	if err != nil {
		return
	}
	s.art = art
	s.loaded = true
	s.mtime = info.ModTime()
}

// EnsureFresh 检查磁盘上的修改标记，发现变化时同步重载。
// 可被多个请求线程与训练写方并发调用。
func (s *OfflineScorer) EnsureFresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		// 文件消失时保留已加载的旧模型
		return
	}
	if !s.loaded || !s.mtime.Equal(info.ModTime()) {
		s.reload()
	}
}

// Available 报告是否存在可用的离线模型。false 时调用方必须走在线回退。
func (s *OfflineScorer) Available() bool {
	s.EnsureFresh()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// HasUser 报告用户是否出现在训练数据中。
func (s *OfflineScorer) HasUser(userID string) bool {
	s.EnsureFresh()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return false
	}
	_, ok := s.art.UserIndex[userID]
	return ok
}

// Score 返回 (user, item) 的点积分数。
// 未知 id、越界偏移、模型缺失一律返回 0.0，绝不 panic（IdentityMismatch 策略）。
func (s *OfflineScorer) Score(userID, itemID string) float64 {
	s.EnsureFresh()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return 0.0
	}
	uidx, ok := s.art.UserIndex[userID]
	if !ok {
		return 0.0
	}
	iidx, ok := s.art.ItemIndex[itemID]
	if !ok {
		return 0.0
	}
	// 防御性边界检查：索引与矩阵可能因损坏的 artifact 不对齐
	if uidx < 0 || uidx >= len(s.art.UserFactors) || iidx < 0 || iidx >= len(s.art.ItemFactors) {
		return 0.0
	}
	return dot(s.art.UserFactors[uidx], s.art.ItemFactors[iidx])
}

// Rerank 对候选按离线分数降序排序，附加 cf_score，返回前 k 个。
// 同分时保持输入相对顺序（稳定排序）。
func (s *OfflineScorer) Rerank(userID string, candidates []*core.Candidate, k int) []*core.Candidate {
	out := make([]*core.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if c == nil {
			continue
		}
		score := s.Score(userID, c.Key(i))
		c.CFScore = score
		c.PutLabel("cf_model", utils.Label{Value: "offline", Source: "rank"})
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CFScore > out[j].CFScore
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// dot 计算两个向量的点积；长度不一致时按 0 处理。
func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
