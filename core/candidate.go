package core

import (
	"strconv"

	"github.com/rushteam/venuekit/pkg/utils"
)

// GeoPoint 是 WGS84 坐标点。
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PriceRange 是价格区间（货币单位由业务约定）。
// Min/Max 为 nil 表示该侧无数据；两侧都为 nil 表示完全无价格信息。
type PriceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Candidate 是排序链路中的统一承载结构：门店元数据、分数、标签。
// 由上游检索方创建，各排序阶段只做增强（写 DistanceKm / CFScore / Labels），
// 不做结构性修改；请求结束即销毁。
//
// 可选字段统一用指针表达"无数据"，下游必须区分"缺失"与"零值"：
// 例如 DistanceKm == nil 表示距离未知，而不是 0 公里。
type Candidate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Location    *GeoPoint   `json:"location,omitempty"`
	Rating      *float64    `json:"rating,omitempty"`
	ReviewCount int         `json:"review_count"`
	Price       *PriceRange `json:"price,omitempty"`
	Cuisines    []string    `json:"cuisines"`
	URL         string      `json:"url"`

	// DistanceKm 由地理过滤阶段计算并附加；nil 表示两侧坐标不全、无法计算。
	DistanceKm *float64 `json:"distance_km,omitempty"`

	// CFScore 由协同过滤阶段附加；无用户身份或无模型时保持 0。
	CFScore float64 `json:"cf_score"`

	// Labels 用于解释与策略驱动，全链路透传。
	Labels map[string]utils.Label `json:"labels,omitempty"`
}

func NewCandidate(id string) *Candidate {
	return &Candidate{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// Key 返回候选的身份键：ID 优先，其次展示 URL，最后退化为位置下标。
// 保证每个候选都有一个可用于交互日志对齐的键。
func (c *Candidate) Key(pos int) string {
	if c.ID != "" {
		return c.ID
	}
	if c.URL != "" {
		return c.URL
	}
	return strconv.Itoa(pos)
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}

// Float64 返回 v 的指针，用于简化可选字段的构造。
func Float64(v float64) *float64 { return &v }
