package feedback

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/venuekit/core"
)

// defaultCollectConcurrency 是曝光批量落盘的默认并发度。
const defaultCollectConcurrency = 4

// Collector 把一次推荐返回的候选批量落成曝光事件，
// 供后续的点击/点赞事件与之对齐形成完整反馈闭环。
type Collector struct {
	Log *Log

	// Concurrency <= 0 时使用 defaultCollectConcurrency
	Concurrency int
}

// CollectImpressions 为 candidates 中的每个候选记录一条 impression 事件。
// 各候选并发写入，任一失败即返回该错误（其余写入不回滚，
// 日志是 append-only，重复曝光对训练无害）。
func (c *Collector) CollectImpressions(ctx context.Context, userID string, candidates []*core.Candidate) error {
	if c.Log == nil || len(candidates) == 0 {
		return nil
	}

	limit := c.Concurrency
	if limit <= 0 {
		limit = defaultCollectConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, cand := range candidates {
		if cand == nil {
			continue
		}
		i, cand := i, cand
		g.Go(func() error {
			return c.Log.Record(gctx, core.InteractionEvent{
				UserID: userID,
				ItemID: cand.Key(i),
				Action: core.ActionImpression,
			})
		})
	}
	return g.Wait()
}
