package cf

import (
	"sort"

	"github.com/rushteam/venuekit/core"
	"github.com/rushteam/venuekit/pkg/utils"
)

// popularityFallbackScale 是冷启动兜底的缩放系数：
// 邻居信号为 0 的候选按 0.1 * 全局热度排序，压低一档保证
// 直接的社交信号永远排在纯热度之前。
const popularityFallbackScale = 0.1

// OnlineScorer 是基于交互日志的轻量内存 CF 打分器（在线回退）。
//
// 构造时一次性建好：每个用户的正向交互物品集、物品的正向奖励热度表。
// 打分：目标用户与其他用户做 Jaccard 相似度，
// score = Σ(similarity * reward)；无邻居信号时回退到缩放后的热度。
type OnlineScorer struct {
	userItems  map[string]map[string]struct{}
	rewards    map[string]map[string]float64 // user -> item -> 最近一次正向奖励
	popularity map[string]float64            // item -> 正向奖励之和
}

// NewOnlineScorer 从事件流构建在线打分器，只吸收正向交互（有效奖励 > 0）。
func NewOnlineScorer(events []core.InteractionEvent) *OnlineScorer {
	s := &OnlineScorer{
		userItems:  make(map[string]map[string]struct{}),
		rewards:    make(map[string]map[string]float64),
		popularity: make(map[string]float64),
	}
	for i := range events {
		ev := &events[i]
		if ev.UserID == "" || ev.ItemID == "" {
			continue
		}
		reward := ev.EffectiveReward()
		if reward <= 0 {
			continue
		}
		if s.userItems[ev.UserID] == nil {
			s.userItems[ev.UserID] = make(map[string]struct{})
			s.rewards[ev.UserID] = make(map[string]float64)
		}
		s.userItems[ev.UserID][ev.ItemID] = struct{}{}
		s.rewards[ev.UserID][ev.ItemID] = reward
		s.popularity[ev.ItemID] += reward
	}
	return s
}

// Jaccard 计算两个物品集的 Jaccard 相似度。
// 任一集合为空时为 0；完全相同的非空集合为 1。
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Score 返回单个候选键的在线 CF 分数（含热度兜底）。
func (s *OnlineScorer) Score(userID, itemKey string) float64 {
	userSet := s.userItems[userID]

	var score float64
	for other, items := range s.userItems {
		if other == userID {
			continue
		}
		sim := Jaccard(userSet, items)
		if sim <= 0 {
			continue
		}
		if r, ok := s.rewards[other][itemKey]; ok && r > 0 {
			score += sim * r
		}
	}

	if score == 0 {
		if pop, ok := s.popularity[itemKey]; ok {
			score = popularityFallbackScale * pop
		}
	}
	return score
}

// ScoreCandidates 对候选打分、附加 cf_score，按分数降序稳定排序并截断到 k。
// 没有 ID 的候选退化到 URL 或位置下标作为身份键，
// 保证零信号时每个候选也有分数（0.0）。
func (s *OnlineScorer) ScoreCandidates(userID string, candidates []*core.Candidate, k int) []*core.Candidate {
	out := make([]*core.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if c == nil {
			continue
		}
		c.CFScore = s.Score(userID, c.Key(i))
		c.PutLabel("cf_model", utils.Label{Value: "online", Source: "rank"})
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CFScore > out[j].CFScore
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
