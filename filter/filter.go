package filter

import (
	"context"

	"github.com/rushteam/venuekit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个候选是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
//
// 约定：数据缺失永远判为保留（MissingData 宽松策略），
// 避免在稀疏目录上把结果饿死。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 candidate 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, candidate *core.Candidate) (bool, error)
}
