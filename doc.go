// Package venuekit 是一个场所推荐工具包（Venue Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Filter → Rank → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 混合排序: 离线矩阵分解 + 在线邻居回退的协同过滤，叠加 bandit 在线学习重排
// - Node 可扩展: 自定义 Node 即可插拔扩展
package venuekit

import "github.com/rushteam/venuekit/pipeline"

// 轻量 facade：便于用户直接 import "venuekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
