package filter

import (
	"context"

	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pkg/geo"
)

// DistanceFilter 按大圆距离上限过滤，并在两侧坐标齐全时把计算出的
// 距离写回 Candidate.DistanceKm（保留的候选带距离进入后续阶段）。
//
// 任意一侧坐标缺失时直接保留，DistanceKm 保持 nil——下游必须能区分
// "很近"和"没有数据"。
type DistanceFilter struct{}

func (f *DistanceFilter) Name() string {
	return "filter.distance"
}

func (f *DistanceFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	var user *core.GeoPoint
	var limit *float64
	if rctx != nil && rctx.Query != nil {
		user = rctx.Query.Location
		limit = rctx.Query.DistanceLimitKm
	}

	if user == nil || c.Location == nil {
		return false, nil
	}

	dist := geo.HaversineKm(user.Lat, user.Lng, c.Location.Lat, c.Location.Lng)
	c.DistanceKm = &dist

	if limit == nil {
		return false, nil
	}
	return dist > *limit, nil
}
