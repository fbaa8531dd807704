package pipeline

import (
	"context"

	"github.com/rushteam/venuekit/core"
)

// Pipeline 是 venuekit 的核心抽象：把排序逻辑拆成可组合的 Node 链。
// 空候选集在任意一环都只会继续向后透传，不会报错。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	cur := candidates
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
