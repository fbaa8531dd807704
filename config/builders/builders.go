// Package builders 通过 init 注册内置 Node 的配置构建器。
// 入口处 import _ "github.com/rushteam/venuekit/config/builders" 即可启用配置驱动。
package builders

import (
	"fmt"

	"github.com/rushteam/venuekit/bandit"
	"github.com/rushteam/venuekit/config"
	"github.com/rushteam/venuekit/filter"
	"github.com/rushteam/venuekit/pipeline"
	"github.com/rushteam/venuekit/pkg/conv"
	"github.com/rushteam/venuekit/rank"
	"github.com/rushteam/venuekit/rerank"
)

func init() {
	config.Register("filter.geo", BuildGeoAttributeNode)
	config.Register("filter.rule", BuildRuleFilterNode)
	config.Register("rank.bandit", BuildBanditNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildGeoAttributeNode 构建地理/属性过滤 Node。
// 配置：aliases（可选，map[菜系][]别名，缺省用内置别名表）。
func BuildGeoAttributeNode(cfg map[string]interface{}) (pipeline.Node, error) {
	var aliases map[string][]string
	if raw, ok := cfg["aliases"].(map[string]interface{}); ok {
		aliases = make(map[string][]string, len(raw))
		for k, v := range raw {
			aliases[k] = conv.SliceAnyToString(v)
		}
	}
	return filter.NewGeoAttributeNode(aliases), nil
}

// BuildRuleFilterNode 构建 CEL 规则过滤 Node。
// 配置：expr（必填，表达式为 true 时候选保留）。
func BuildRuleFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	return &filter.Node{Filters: []filter.Filter{&filter.RuleFilter{Expr: expr}}}, nil
}

// BuildBanditNode 构建 bandit 重排 Node。
// 配置：alpha（探索系数，默认 1.0）、top_k（截断，默认不截断）。
func BuildBanditNode(cfg map[string]interface{}) (pipeline.Node, error) {
	alpha := conv.ConfigGetFloat64(cfg, "alpha", bandit.DefaultAlpha)
	topK := int(conv.ConfigGetInt64(cfg, "top_k", 0))
	return &rank.BanditNode{
		Model: bandit.NewLinUCB(alpha, bandit.FeatureDim),
		TopK:  topK,
	}, nil
}

// BuildTopNNode 构建 Top-N 截断 Node。配置：n。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(cfg, "n", 0))
	return &rerank.TopNNode{N: n}, nil
}
