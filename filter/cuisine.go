package filter

import (
	"context"
	"strings"

	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pkg/textnorm"
)

// DefaultCuisineAliases 是常见菜系的同义词表。
// 请求方用一种叫法（如 "fried chicken"），目录方可能用另一种（如 "gà rán"），
// 匹配前把请求 token 集按别名表做并集扩展，两套词汇就能互相命中。
var DefaultCuisineAliases = map[string][]string{
	"fried chicken": {"ga ran", "fried chicken", "chicken"},
	"chicken":       {"ga", "ga ran", "chicken"},
	"korean":        {"han quoc", "korean"},
	"bbq":           {"barbecue", "nuong", "bbq"},
	"hotpot":        {"lau", "hotpot", "hot pot"},
	"vegetarian":    {"chay", "vegetarian", "vegan"},
	"seafood":       {"hai san", "seafood"},
}

// CuisineFilter 按菜系/品类 token 过滤。
//
// 匹配规则：请求没有菜系约束时全部保留；否则任意一个扩展后的请求 token
// 是候选的菜系、品类或名称字段（归一化后）的子串即命中。
type CuisineFilter struct {
	// Aliases 同义词表；nil 时使用 DefaultCuisineAliases
	Aliases map[string][]string
}

func (f *CuisineFilter) Name() string {
	return "filter.cuisine"
}

func (f *CuisineFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if rctx == nil || rctx.Query == nil || len(rctx.Query.Cuisines) == 0 {
		return false, nil
	}

	tokens := f.expand(rctx.Query.Cuisines)

	fields := textnorm.NormalizeAll(c.Cuisines)
	if c.Name != "" {
		// 名称里常带菜品关键词（"Gà Rán KFC"），一并参与匹配
		fields = append(fields, textnorm.Normalize(c.Name))
	}

	for _, token := range tokens {
		for _, field := range fields {
			if strings.Contains(field, token) {
				return false, nil
			}
		}
	}
	return true, nil
}

// expand 对请求 token 做别名扩展并归一化，结果含原始 token。
func (f *CuisineFilter) expand(requested []string) []string {
	aliases := f.Aliases
	if aliases == nil {
		aliases = DefaultCuisineAliases
	}

	expanded := make([]string, 0, len(requested)*2)
	for _, r := range requested {
		expanded = append(expanded, r)
		if more, ok := aliases[strings.ToLower(strings.TrimSpace(r))]; ok {
			expanded = append(expanded, more...)
		}
	}
	return textnorm.NormalizeAll(expanded)
}
