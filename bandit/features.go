package bandit

import (
	"github.com/rushteam/venuekit/core"
)

// FeatureVector 把候选和请求组装成定长特征向量：
//
//	[ bias, rating, -distance_km, price_fit, cf_score ]
//
// 缺失字段取 0：rating 未知为 0，距离未知为 0（不惩罚），
// price_fit 见 priceFit。距离取负号，越远分越低。
func FeatureVector(c *core.Candidate, q *core.Query) []float64 {
	x := make([]float64, FeatureDim)
	x[0] = 1.0
	if c == nil {
		return x
	}

	if c.Rating != nil {
		x[1] = *c.Rating
	}
	if c.DistanceKm != nil {
		x[2] = -*c.DistanceKm
	}
	if q != nil {
		x[3] = priceFit(q.Price, c.Price)
	}
	x[4] = c.CFScore
	return x
}

// priceFit 衡量候选价位与请求预算的匹配度：
//
//	 0  请求未给预算
//	-1  可证明冲突（候选上限低于预算下限，或候选下限高于预算上限）
//	+1  其余情况（含候选缺价位数据：无法证明冲突，按匹配处理）
func priceFit(user, item *core.PriceRange) float64 {
	if user == nil || (user.Min == nil && user.Max == nil) {
		return 0
	}
	if item != nil {
		if user.Min != nil && item.Max != nil && *item.Max < *user.Min {
			return -1
		}
		if user.Max != nil && item.Min != nil && *item.Min > *user.Max {
			return -1
		}
	}
	return 1
}
