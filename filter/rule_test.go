package filter

import (
	"context"
	"testing"

	"github.com/rushteam/venuekit/core"
)

func TestRuleFilter(t *testing.T) {
	rctx := queryCtx(&core.Query{Allergies: []string{"peanut"}})

	tests := []struct {
		name       string
		expr       string
		candidate  *core.Candidate
		wantFilter bool
		wantErr    bool
	}{
		{
			name:       "empty expr keeps",
			expr:       "",
			candidate:  &core.Candidate{},
			wantFilter: false,
		},
		{
			name:       "rule satisfied keeps",
			expr:       "candidate.review_count >= 10",
			candidate:  &core.Candidate{ReviewCount: 50},
			wantFilter: false,
		},
		{
			name:       "rule violated filters",
			expr:       "candidate.review_count >= 10",
			candidate:  &core.Candidate{ReviewCount: 3},
			wantFilter: true,
		},
		{
			name:       "allergy conflict filters",
			expr:       "!('peanut' in query.allergies) || !candidate.name.contains('Peanut')",
			candidate:  &core.Candidate{Name: "Peanut Palace"},
			wantFilter: true,
		},
		{
			name:       "broken rule keeps and reports",
			expr:       "candidate.review_count >=",
			candidate:  &core.Candidate{},
			wantFilter: false,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewRuleFilter(tt.expr)
			got, err := f.ShouldFilter(context.Background(), rctx, tt.candidate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ShouldFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.wantFilter {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.wantFilter)
			}
		})
	}
}
