// Package bandit 实现用于重排的线性上下文 bandit 打分器（对角 LinUCB）。
//
// 相对完整 LinUCB（维护 d×d 协方差矩阵并求逆），这里只保留对角近似：
// 每个特征一个累积二阶矩 A_diag[i] 和一个奖励加权和 b[i]。
// 点估计 Σ (b_i / A_i) * x_i，探索加成 α * sqrt(Σ x_i² / A_i)，
// 仍然会抬高少见特征组合的分数，但省掉矩阵求逆。
package bandit

import (
	"math"
	"sort"

	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pkg/utils"
)

const (
	// FeatureDim 是特征维度：bias、rating、-distance、price_fit、cf_score
	FeatureDim = 5

	// DefaultAlpha 是默认探索系数
	DefaultAlpha = 1.0
)

// LinUCB 是共享权重的对角 LinUCB 打分器。
// A_diag 每维初始化为 1.0；打分只读，权重只由 Update 修改。
type LinUCB struct {
	Alpha float64   `json:"alpha"`
	Dim   int       `json:"dim"`
	ADiag []float64 `json:"a_diag"`
	B     []float64 `json:"b"`
}

// NewLinUCB 创建一个 dim 维、探索系数 alpha 的打分器。
// alpha <= 0 时取 DefaultAlpha，dim <= 0 时取 FeatureDim。
func NewLinUCB(alpha float64, dim int) *LinUCB {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	if dim <= 0 {
		dim = FeatureDim
	}
	a := make([]float64, dim)
	for i := range a {
		a[i] = 1.0
	}
	return &LinUCB{
		Alpha: alpha,
		Dim:   dim,
		ADiag: a,
		B:     make([]float64, dim),
	}
}

func (m *LinUCB) Name() string { return "linucb_diag" }

// Score 返回 预测值 + 探索加成。
func (m *LinUCB) Score(x []float64) float64 {
	n := m.Dim
	if len(x) < n {
		n = len(x)
	}

	var point, conf float64
	for i := 0; i < n; i++ {
		point += (m.B[i] / m.ADiag[i]) * x[i]
		conf += x[i] * x[i] / m.ADiag[i]
	}
	return point + m.Alpha*math.Sqrt(conf)
}

// Update 用观测到的奖励更新权重：A_i += x_i²，b_i += x_i * reward。
func (m *LinUCB) Update(x []float64, reward float64) {
	n := m.Dim
	if len(x) < n {
		n = len(x)
	}
	for i := 0; i < n; i++ {
		m.ADiag[i] += x[i] * x[i]
		m.B[i] += x[i] * reward
	}
}

// Rerank 用 model 对候选打分、按分数降序稳定排序、截断到 k，
// 并返回使用的 model 实例（调用方可持久化或继续 Update）。
// model 为 nil 时新建默认模型。
func Rerank(model *LinUCB, candidates []*core.Candidate, q *core.Query, k int) ([]*core.Candidate, *LinUCB) {
	if model == nil {
		model = NewLinUCB(DefaultAlpha, FeatureDim)
	}

	out := make([]*core.Candidate, 0, len(candidates))
	scores := make(map[*core.Candidate]float64, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		x := FeatureVector(c, q)
		scores[c] = model.Score(x)
		c.PutLabel("rank_model", utils.Label{Value: model.Name(), Source: "rerank"})
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i]] > scores[out[j]]
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, model
}
