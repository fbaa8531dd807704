package core

import "github.com/rushteam/venuekit/pkg/utils"

// RecommendContext 承载用户/场景/请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID   string // 为空表示匿名请求，CF 阶段整体跳过
	DeviceID string
	Scene    string

	// Query 是语言理解方产出的结构化意图（只读）
	Query *Query

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数（debug 开关、AB 分桶等）
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
