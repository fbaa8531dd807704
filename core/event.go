package core

import "math"

// Action 是交互动作类型。
type Action string

const (
	ActionImpression Action = "impression" // 曝光
	ActionView       Action = "view"       // 查看详情
	ActionClick      Action = "click"      // 点击
	ActionLike       Action = "like"       // 点赞
	ActionDislike    Action = "dislike"    // 不喜欢
)

// defaultRewards 是动作到奖励的默认映射。
// 仅在事件未携带显式非零奖励时生效。
var defaultRewards = map[Action]float64{
	ActionImpression: 0,
	ActionView:       0,
	ActionClick:      0.1,
	ActionLike:       1.0,
	ActionDislike:    -0.5,
}

// DefaultReward 返回动作的默认奖励；未知动作返回 0。
func DefaultReward(a Action) float64 {
	return defaultRewards[a]
}

// InteractionEvent 是 append-only 交互日志中的一条记录。
type InteractionEvent struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	ItemID    string         `json:"item_id"`
	Timestamp int64          `json:"timestamp"` // Unix 时间戳（秒）
	Action    Action         `json:"action"`
	Reward    float64        `json:"reward"`
	Context   map[string]any `json:"context,omitempty"` // 请求时刻的上下文快照
}

// EffectiveReward 返回事件的有效奖励。
// 不变量：结果永远是有限实数。显式非零奖励优先；
// 奖励缺失、为零或非有限时回退到动作的默认映射。
func (e *InteractionEvent) EffectiveReward() float64 {
	if e.Reward != 0 && !math.IsNaN(e.Reward) && !math.IsInf(e.Reward, 0) {
		return e.Reward
	}
	return DefaultReward(e.Action)
}

// IsPositive 判断事件是否为正向交互（有效奖励 > 0）。
func (e *InteractionEvent) IsPositive() bool {
	return e.EffectiveReward() > 0
}
