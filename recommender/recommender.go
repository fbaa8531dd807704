// Package recommender 把过滤、协同过滤、bandit 重排与反馈采集
// 编排成一条端到端的推荐流水线。
package recommender

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/venuekit/bandit"
	"github.com/rushteam/venuekit/cf"
	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/feedback"
	"github.com/rushteam/venuekit/filter"
	"github.com/rushteam/venuekit/pipeline"
	"github.com/rushteam/venuekit/rank"
	"github.com/rushteam/venuekit/rerank"
)

// DefaultTopK 是单次请求默认返回的候选数。
const DefaultTopK = 10

// CF 路径标记（日志与打点共用）。
const (
	cfPathOffline = "offline"
	cfPathOnline  = "online"
	cfPathSkip    = "skip"
)

// Recommender 是推荐编排器。
//
// 单次请求的处理顺序：
//  1. 校验 Query（唯一会向调用方抛错的环节）
//  2. 检查重训触发条件（非阻塞，发射后不管）
//  3. 地理/属性过滤（菜系、评分下限、距离上限）
//  4. 协同过滤打分：离线模型可用走离线，否则在线回退，匿名请求跳过
//  5. bandit 重排并截断 TopK
//  6. 曝光落盘（尽力而为，失败只记日志）
//
// 候选池为空或被过滤空时返回空结果，不算错误。
type Recommender struct {
	// Offline 为 nil 时离线路径永远不可用
	Offline *cf.OfflineScorer

	// Feedback 提供在线 CF 的事件源与曝光落盘；nil 时在线路径不可用
	Feedback *feedback.Log

	// Scheduler 为 nil 时不做重训触发检查
	Scheduler *cf.Scheduler

	// Bandit 是跨请求共享权重的重排模型；nil 时首次请求懒加载
	Bandit *bandit.LinUCB

	// Collector 为 nil 时不落曝光
	Collector *feedback.Collector

	// CuisineAliases 为 nil 时使用内置别名表
	CuisineAliases map[string][]string

	// TopK <= 0 时使用 DefaultTopK
	TopK int

	Logger zerolog.Logger
}

// Recommend 对候选池执行一次完整的推荐流水线。
// pool 中的候选会被就地修改（附加 DistanceKm、CFScore、labels）。
func (r *Recommender) Recommend(
	ctx context.Context,
	rctx *core.RecommendContext,
	pool []*core.Candidate,
) ([]*core.Candidate, error) {
	if rctx == nil {
		return nil, core.ErrInvalidQuery
	}
	if err := rctx.Query.Validate(); err != nil {
		return nil, err
	}

	if r.Scheduler != nil {
		r.Scheduler.MaybeRetrain(ctx)
	}

	if len(pool) == 0 {
		recommendRequestsTotal.WithLabelValues(cfPathSkip).Inc()
		recommendReturned.Observe(0)
		return []*core.Candidate{}, nil
	}

	cfNode, path := r.buildCFStage(ctx, rctx)

	topK := r.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			filter.NewGeoAttributeNode(r.CuisineAliases),
			cfNode,
			&rank.BanditNode{Model: r.banditModel(), TopK: topK},
			&rerank.TopNNode{N: topK},
		},
	}

	out, err := p.Run(ctx, rctx, pool)
	if err != nil {
		// 流水线内部错误降级为空结果：只有非法 Query 才向上抛
		r.Logger.Error().Err(err).Str("user", rctx.UserID).Msg("pipeline degraded to empty result")
		out = []*core.Candidate{}
	}
	if out == nil {
		out = []*core.Candidate{}
	}

	recommendRequestsTotal.WithLabelValues(path).Inc()
	recommendReturned.Observe(float64(len(out)))
	r.Logger.Debug().Str("user", rctx.UserID).Str("cf_path", path).
		Int("pool", len(pool)).Int("returned", len(out)).Msg("recommend done")

	r.collectImpressions(ctx, rctx.UserID, out)
	return out, nil
}

// buildCFStage 选择本次请求的 CF 路径并构造对应的排序 Node。
// 匿名请求或两类打分器都不可用时，CF 阶段退化为透传。
func (r *Recommender) buildCFStage(ctx context.Context, rctx *core.RecommendContext) (pipeline.Node, string) {
	if rctx.UserID == "" {
		return &rank.CFNode{}, cfPathSkip
	}

	if r.Offline != nil && r.Offline.Available() {
		return &rank.CFNode{Offline: r.Offline}, cfPathOffline
	}

	if r.Feedback != nil {
		events, err := r.Feedback.Events(ctx)
		if err != nil {
			r.Logger.Warn().Err(err).Msg("read interactions for online cf failed")
			return &rank.CFNode{}, cfPathSkip
		}
		return &rank.CFNode{Online: cf.NewOnlineScorer(events)}, cfPathOnline
	}

	return &rank.CFNode{}, cfPathSkip
}

// banditModel 返回共享的重排模型，首次使用时懒加载默认模型。
func (r *Recommender) banditModel() *bandit.LinUCB {
	if r.Bandit == nil {
		r.Bandit = bandit.NewLinUCB(bandit.DefaultAlpha, bandit.FeatureDim)
	}
	return r.Bandit
}

func (r *Recommender) collectImpressions(ctx context.Context, userID string, out []*core.Candidate) {
	if r.Collector == nil || len(out) == 0 {
		return
	}
	if err := r.Collector.CollectImpressions(ctx, userID, out); err != nil {
		r.Logger.Warn().Err(err).Msg("collect impressions failed")
	}
}

// LogInteraction 记录一条用户反馈并用它在线更新 bandit 权重。
// 事件落盘失败直接返回错误；bandit 更新在内存中完成，不会失败。
func (r *Recommender) LogInteraction(ctx context.Context, ev core.InteractionEvent, c *core.Candidate) error {
	if r.Feedback == nil {
		return core.NewDomainError(core.ModuleFeedback, core.ErrorCodeUnavailable,
			"recommender: feedback log not configured")
	}
	if err := r.Feedback.Record(ctx, ev); err != nil {
		return err
	}

	if c != nil {
		x := bandit.FeatureVector(c, nil)
		r.banditModel().Update(x, ev.EffectiveReward())
	}
	return nil
}
