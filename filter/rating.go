package filter

import (
	"context"

	"github.com/rushteam/venuekit/core"
)

// RatingFilter 按最低评分过滤。
// 请求未设下限、或候选评分缺失时保留（缺失数据不参与淘汰）。
type RatingFilter struct{}

func (f *RatingFilter) Name() string {
	return "filter.rating"
}

func (f *RatingFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if rctx == nil || rctx.Query == nil || rctx.Query.RatingMin == nil {
		return false, nil
	}
	if c.Rating == nil {
		return false, nil
	}
	return *c.Rating < *rctx.Query.RatingMin, nil
}
