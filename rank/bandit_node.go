package rank

import (
	"context"

	"github.com/rushteam/venuekit/bandit"
	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pipeline"
)

// BanditNode 是 bandit 重排 Node：用共享权重的对角 LinUCB
// 对候选打分、稳定排序并截断到 TopK。
// Model 为 nil 时首次 Process 懒加载一个默认模型并复用。
// - 写入 labels：rank_model
type BanditNode struct {
	Model *bandit.LinUCB

	// TopK <= 0 表示不截断
	TopK int
}

func (n *BanditNode) Name() string        { return "rank.bandit" }
func (n *BanditNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *BanditNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	var q *core.Query
	if rctx != nil {
		q = rctx.Query
	}

	out, model := bandit.Rerank(n.Model, candidates, q, n.TopK)
	n.Model = model
	return out, nil
}
