package filter

import (
	"context"

	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的规则过滤器，用于承接特殊要求/业务规则。
// 表达式返回 true 表示候选满足规则（保留），false 表示过滤。
//
// 示例：
//   - `candidate.review_count >= 10`
//   - `!("peanut" in query.allergies) || !candidate.name.contains("peanut")`
type RuleFilter struct {
	// Expr 是 CEL 表达式；为空时不过滤任何候选
	Expr string
}

func NewRuleFilter(expr string) *RuleFilter {
	return &RuleFilter{Expr: expr}
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if f.Expr == "" {
		return false, nil
	}
	keep, err := dsl.NewEval(c, rctx).Evaluate(f.Expr)
	if err != nil {
		// 规则本身有问题时不淘汰候选，交给 Node 记录
		return false, err
	}
	return !keep, nil
}
