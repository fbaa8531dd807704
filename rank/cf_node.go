// Package rank 提供排序阶段的 Node 实现：协同过滤打分与 bandit 重排。
package rank

import (
	"context"

	"github.com/rushteam/venuekit/cf"
	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pipeline"
)

// CFNode 是协同过滤排序 Node。
//
// 路径选择：离线模型可用走离线（矩阵分解因子点积），
// 否则回退在线打分器（Jaccard 邻居加权），两者都没有则原样放行。
// 匿名请求（UserID 为空）跳过打分，候选 CFScore 保持 0。
// - 写入 labels：cf_model（offline / online）
// - 更新 candidate.CFScore 并按分数降序稳定排序
type CFNode struct {
	Offline *cf.OfflineScorer
	Online  *cf.OnlineScorer

	// TopK <= 0 表示不截断
	TopK int
}

func (n *CFNode) Name() string        { return "rank.cf" }
func (n *CFNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *CFNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	if rctx == nil || rctx.UserID == "" {
		return candidates, nil
	}

	if n.Offline != nil {
		n.Offline.EnsureFresh()
		if n.Offline.Available() {
			return n.Offline.Rerank(rctx.UserID, candidates, n.TopK), nil
		}
	}
	if n.Online != nil {
		return n.Online.ScoreCandidates(rctx.UserID, candidates, n.TopK), nil
	}
	return candidates, nil
}
