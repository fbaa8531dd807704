package core

import (
	"math"
	"testing"
)

func TestEffectiveReward(t *testing.T) {
	tests := []struct {
		name  string
		event InteractionEvent
		want  float64
	}{
		{name: "like default", event: InteractionEvent{Action: ActionLike}, want: 1.0},
		{name: "click default", event: InteractionEvent{Action: ActionClick}, want: 0.1},
		{name: "dislike default", event: InteractionEvent{Action: ActionDislike}, want: -0.5},
		{name: "impression default", event: InteractionEvent{Action: ActionImpression}, want: 0},
		{name: "explicit reward wins", event: InteractionEvent{Action: ActionClick, Reward: 0.8}, want: 0.8},
		{name: "explicit negative reward wins", event: InteractionEvent{Action: ActionLike, Reward: -2}, want: -2},
		{name: "zero reward falls back to default", event: InteractionEvent{Action: ActionLike, Reward: 0}, want: 1.0},
		{name: "nan falls back to default", event: InteractionEvent{Action: ActionLike, Reward: math.NaN()}, want: 1.0},
		{name: "inf falls back to default", event: InteractionEvent{Action: ActionClick, Reward: math.Inf(1)}, want: 0.1},
		{name: "unknown action is zero", event: InteractionEvent{Action: Action("share")}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.event.EffectiveReward()
			if got != tt.want {
				t.Errorf("EffectiveReward() = %v, want %v", got, tt.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("EffectiveReward() must always be finite, got %v", got)
			}
		})
	}
}

func TestIsPositive(t *testing.T) {
	if !(&InteractionEvent{Action: ActionLike}).IsPositive() {
		t.Error("like should be positive")
	}
	if (&InteractionEvent{Action: ActionImpression}).IsPositive() {
		t.Error("impression should not be positive")
	}
	if (&InteractionEvent{Action: ActionDislike}).IsPositive() {
		t.Error("dislike should not be positive")
	}
}
