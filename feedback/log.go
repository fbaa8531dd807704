// Package feedback 实现交互反馈的采集与读取：
// append-only 交互日志（core.KeyValueStore 列表）与曝光采集器。
package feedback

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rushteam/venuekit/cf"
	"github.com/rushteam/venuekit/core"
)

// DefaultLogKey 是交互日志在存储中的默认列表 key。
const DefaultLogKey = "venuekit:interactions"

// Log 是 append-only 交互日志。
//
// 每条事件 JSON 序列化后 RPush 到存储列表，只追加不修改；
// 在线 CF、重训调度器都从这里读。实现 cf.EventSource。
type Log struct {
	store core.KeyValueStore
	key   string
}

var _ cf.EventSource = (*Log)(nil)

// NewLog 创建交互日志。key 为空时使用 DefaultLogKey。
func NewLog(store core.KeyValueStore, key string) *Log {
	if key == "" {
		key = DefaultLogKey
	}
	return &Log{store: store, key: key}
}

// Record 追加一条交互事件。
// ID 缺省补 uuid，Timestamp 缺省补当前时间；
// Reward 留给 EffectiveReward 按动作默认映射解释，这里不改写。
func (l *Log) Record(ctx context.Context, ev core.InteractionEvent) error {
	if ev.ItemID == "" {
		return core.NewDomainError(core.ModuleFeedback, core.ErrorCodeInvalidInput,
			"feedback: item id is required")
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(&ev)
	if err != nil {
		return err
	}
	return l.store.RPush(ctx, l.key, data)
}

// Events 返回全量交互事件，按写入顺序。
// 反序列化失败的脏记录直接跳过，不影响其余事件。
func (l *Log) Events(ctx context.Context) ([]core.InteractionEvent, error) {
	raws, err := l.store.LRange(ctx, l.key, 0, -1)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	events := make([]core.InteractionEvent, 0, len(raws))
	for _, raw := range raws {
		var ev core.InteractionEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// CountPositive 返回日志中正向交互（有效奖励 > 0）的总数。
func (l *Log) CountPositive(ctx context.Context) (int, error) {
	events, err := l.Events(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range events {
		if events[i].IsPositive() {
			n++
		}
	}
	return n, nil
}

// Len 返回日志总条数（观测用）。
func (l *Log) Len(ctx context.Context) (int64, error) {
	n, err := l.store.LLen(ctx, l.key)
	if err != nil && core.IsStoreNotFound(err) {
		return 0, nil
	}
	return n, err
}
