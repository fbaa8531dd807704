package cf

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultRetrainThreshold 是触发重训所需的新增正向交互数。
const DefaultRetrainThreshold = 10

// Scheduler 负责离线模型的后台重训调度。
//
// 两状态机：Idle / Training。状态翻转由互斥锁保护，
// 锁只覆盖 check-and-flip，绝不跨训练执行持有；
// 全系统同一时刻至多一个训练任务，重复触发静默丢弃（不排队）。
//
// MaybeRetrain 内联在每次请求路径上执行：任何训练失败都会被记录
// 并吞掉，绝不传播给调用方，状态无条件回到 Idle。
type Scheduler struct {
	Source        EventSource
	Trainer       Trainer
	ArtifactPath  string
	WatermarkPath string

	// Threshold <= 0 时使用 DefaultRetrainThreshold
	Threshold int

	Logger zerolog.Logger

	mu       sync.Mutex
	training bool
}

// tryBegin 尝试 Idle -> Training 翻转；已在训练中返回 false。
func (s *Scheduler) tryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.training {
		return false
	}
	s.training = true
	return true
}

// complete 无条件回到 Idle（成功或失败都调用）。
func (s *Scheduler) complete() {
	s.mu.Lock()
	s.training = false
	s.mu.Unlock()
}

// Training 报告当前是否有训练任务在跑（观测用）。
func (s *Scheduler) Training() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.training
}

// MaybeRetrain 检查触发条件，满足则异步启动一次后台重训。
// 非阻塞、永不报错；请求不等待也不观察训练结果。
func (s *Scheduler) MaybeRetrain(ctx context.Context) {
	if s.Source == nil || s.Trainer == nil {
		return
	}

	pos, err := s.Source.CountPositive(ctx)
	if err != nil {
		s.Logger.Debug().Err(err).Msg("retrain check: count positives failed")
		return
	}

	last := ReadWatermark(s.WatermarkPath)
	// 水位线高于实际计数说明日志被重置过：按 0 处理，
	// 下一次达到阈值即强制重训
	if last > pos {
		last = 0
	}

	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultRetrainThreshold
	}
	if pos-last < threshold {
		return
	}

	if !s.tryBegin() {
		// 已有训练在跑：静默丢弃本次触发
		return
	}

	retrainTriggeredTotal.Inc()
	s.Logger.Info().Int("positives", pos).Int("watermark", last).
		Msg("retrain triggered in background")

	// 与请求解耦：训练使用独立 context，发射后不管
	go s.runTraining(context.Background(), pos)
}

// runTraining 执行一次训练任务。
// 水位线写的是触发时刻观察到的正向计数（不是完成时刻），
// 训练期间新到的交互不会被漏计。
func (s *Scheduler) runTraining(ctx context.Context, posAtTrigger int) {
	defer s.complete()

	err := s.trainOnce(ctx, posAtTrigger)
	if err != nil {
		retrainCompletedTotal.WithLabelValues("failure").Inc()
		s.Logger.Error().Err(err).Msg("retrain failed")
		return
	}
	retrainCompletedTotal.WithLabelValues("success").Inc()
	s.Logger.Info().Int("positives", posAtTrigger).Str("artifact", s.ArtifactPath).
		Msg("retrain done")
}

func (s *Scheduler) trainOnce(ctx context.Context, posAtTrigger int) error {
	events, err := s.Source.Events(ctx)
	if err != nil {
		return err
	}

	artifact, err := s.Trainer.Train(ctx, events)
	if err != nil {
		return err
	}

	if err := WriteArtifact(s.ArtifactPath, artifact); err != nil {
		return err
	}
	return WriteWatermark(s.WatermarkPath, posAtTrigger)
}
