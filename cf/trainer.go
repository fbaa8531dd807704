package cf

import (
	"context"

	"github.com/rushteam/venuekit/core"
)

// Trainer 是离线训练的黑盒抽象：输入事件流，产出因子矩阵。
// 具体实现可以是进程内的 ALS/BPR，也可以是对离线训练服务的一次 RPC。
type Trainer interface {
	Name() string
	Train(ctx context.Context, events []core.InteractionEvent) (*Artifact, error)
}

// ErrNoPositives 表示训练输入退化：日志中没有任何正向交互。
var ErrNoPositives = core.NewDomainError(core.ModuleCF, core.ErrorCodeInvalidInput,
	"cf: no positive interactions to train on")

// EventSource 是调度器与训练器消费的交互日志读接口。
// feedback.Log 实现此接口。
type EventSource interface {
	// CountPositive 返回日志中正向交互（有效奖励 > 0）的总数
	CountPositive(ctx context.Context) (int, error)

	// Events 返回全量事件，供训练消费
	Events(ctx context.Context) ([]core.InteractionEvent, error)
}
