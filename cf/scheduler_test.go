package cf

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/venuekit/core"
)

type stubSource struct {
	positives int
	events    []core.InteractionEvent
}

func (s *stubSource) CountPositive(context.Context) (int, error) { return s.positives, nil }
func (s *stubSource) Events(context.Context) ([]core.InteractionEvent, error) {
	return s.events, nil
}

type stubTrainer struct {
	mu    sync.Mutex
	calls int

	// block 非 nil 时 Train 阻塞直到它被 close
	block chan struct{}
	fail  error
}

func (t *stubTrainer) Name() string { return "stub" }

func (t *stubTrainer) Train(context.Context, []core.InteractionEvent) (*Artifact, error) {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	if t.block != nil {
		<-t.block
	}
	if t.fail != nil {
		return nil, t.fail
	}
	return testArtifact(1), nil
}

func (t *stubTrainer) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func newTestScheduler(t *testing.T, src *stubSource, tr *stubTrainer) *Scheduler {
	dir := t.TempDir()
	return &Scheduler{
		Source:        src,
		Trainer:       tr,
		ArtifactPath:  filepath.Join(dir, "cf.bin"),
		WatermarkPath: filepath.Join(dir, "cf.watermark"),
		Logger:        zerolog.Nop(),
	}
}

// waitIdle 等待后台训练结束（上限 2s）。
func waitIdle(t *testing.T, s *Scheduler) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !s.Training() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("scheduler did not return to idle")
}

func TestSchedulerBelowThresholdNoTrigger(t *testing.T) {
	tr := &stubTrainer{}
	s := newTestScheduler(t, &stubSource{positives: 14}, tr)
	if err := WriteWatermark(s.WatermarkPath, 5); err != nil {
		t.Fatal(err)
	}

	s.MaybeRetrain(context.Background())
	waitIdle(t, s)

	if tr.Calls() != 0 {
		t.Errorf("trainer calls = %d, want 0 (delta 9 < threshold 10)", tr.Calls())
	}
}

func TestSchedulerTriggersAtThreshold(t *testing.T) {
	tr := &stubTrainer{}
	src := &stubSource{positives: 15, events: []core.InteractionEvent{
		{UserID: "u1", ItemID: "a", Action: core.ActionLike},
	}}
	s := newTestScheduler(t, src, tr)
	if err := WriteWatermark(s.WatermarkPath, 5); err != nil {
		t.Fatal(err)
	}

	s.MaybeRetrain(context.Background())
	waitIdle(t, s)

	if tr.Calls() != 1 {
		t.Fatalf("trainer calls = %d, want 1", tr.Calls())
	}
	if got := ReadWatermark(s.WatermarkPath); got != 15 {
		t.Errorf("watermark = %d, want 15 (count at trigger time)", got)
	}
	if _, err := ReadArtifact(s.ArtifactPath); err != nil {
		t.Errorf("artifact should be written after training: %v", err)
	}
}

func TestSchedulerWatermarkAboveCountTreatedAsZero(t *testing.T) {
	tr := &stubTrainer{}
	s := newTestScheduler(t, &stubSource{positives: 12}, tr)
	// 日志被清空重置过：水位线 20 > 实际计数 12
	if err := WriteWatermark(s.WatermarkPath, 20); err != nil {
		t.Fatal(err)
	}

	s.MaybeRetrain(context.Background())
	waitIdle(t, s)

	if tr.Calls() != 1 {
		t.Errorf("trainer calls = %d, want 1 (12 - 0 >= 10)", tr.Calls())
	}
}

func TestSchedulerSingleConcurrentJob(t *testing.T) {
	tr := &stubTrainer{block: make(chan struct{})}
	s := newTestScheduler(t, &stubSource{positives: 30}, tr)

	s.MaybeRetrain(context.Background())

	// 等第一个任务真正进入 Training 状态
	deadline := time.Now().Add(2 * time.Second)
	for !s.Training() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !s.Training() {
		t.Fatal("first job never started")
	}

	// 训练中再触发：必须被静默丢弃
	s.MaybeRetrain(context.Background())
	s.MaybeRetrain(context.Background())

	close(tr.block)
	waitIdle(t, s)

	if tr.Calls() != 1 {
		t.Errorf("trainer calls = %d, want exactly 1", tr.Calls())
	}
}

func TestSchedulerTrainingFailureKeepsWatermark(t *testing.T) {
	tr := &stubTrainer{fail: ErrNoPositives}
	s := newTestScheduler(t, &stubSource{positives: 10}, tr)

	s.MaybeRetrain(context.Background())
	waitIdle(t, s)

	if tr.Calls() != 1 {
		t.Fatalf("trainer calls = %d, want 1", tr.Calls())
	}
	// 失败不得推进水位线：下一批交互仍能触发重试
	if got := ReadWatermark(s.WatermarkPath); got != 0 {
		t.Errorf("watermark after failure = %d, want 0", got)
	}
	if s.Training() {
		t.Error("scheduler must return to idle after failure")
	}
}
