package core

// Query 是语言理解方产出的结构化意图。
// 一旦构造即视为不可变，所有排序阶段只读消费。
//
// 可选约束统一用指针表达"用户没提"：nil 的约束不参与过滤。
type Query struct {
	Intent              string      `json:"intent"`
	Cuisines            []string    `json:"cuisines"`
	Price               *PriceRange `json:"price,omitempty"`
	DistanceLimitKm     *float64    `json:"distance_limit_km,omitempty"`
	RatingMin           *float64    `json:"rating_min,omitempty"`
	SpecialRequirements []string    `json:"special_requirements,omitempty"`
	Allergies           []string    `json:"allergies,omitempty"`
	EatingTime          *string     `json:"eating_time,omitempty"`
	Location            *GeoPoint   `json:"location,omitempty"`
	RawInput            string      `json:"raw_input"`
}

// Validate 校验 Query 的基本合法性。
// 数据稀疏（约束缺失）永远合法；只有自相矛盾的输入才算非法，
// 这是编排器唯一会向调用方抛出的错误类别。
func (q *Query) Validate() error {
	if q == nil {
		return ErrInvalidQuery
	}
	if q.DistanceLimitKm != nil && *q.DistanceLimitKm < 0 {
		return NewDomainError(ModulePipeline, ErrorCodeInvalidInput, "query: negative distance limit")
	}
	if q.RatingMin != nil && *q.RatingMin < 0 {
		return NewDomainError(ModulePipeline, ErrorCodeInvalidInput, "query: negative rating minimum")
	}
	if q.Price != nil && q.Price.Min != nil && q.Price.Max != nil && *q.Price.Min > *q.Price.Max {
		return NewDomainError(ModulePipeline, ErrorCodeInvalidInput, "query: price min above price max")
	}
	return nil
}

// ErrInvalidQuery 表示 Query 本身不可用（区别于"没有候选"）。
var ErrInvalidQuery = NewDomainError(ModulePipeline, ErrorCodeInvalidInput, "pipeline: invalid query")
