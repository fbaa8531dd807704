package filter

import (
	"context"
	"testing"

	"github.com/rushteam/venuekit/core"
)

func queryCtx(q *core.Query) *core.RecommendContext {
	return &core.RecommendContext{UserID: "u1", Query: q}
}

func TestCuisineFilter(t *testing.T) {
	f := &CuisineFilter{}

	tests := []struct {
		name       string
		cuisines   []string // 请求约束
		candidate  *core.Candidate
		wantFilter bool
	}{
		{
			name:       "no constraint keeps everything",
			cuisines:   nil,
			candidate:  &core.Candidate{Name: "Ocean Palace", Cuisines: []string{"seafood"}},
			wantFilter: false,
		},
		{
			name:       "direct match",
			cuisines:   []string{"seafood"},
			candidate:  &core.Candidate{Cuisines: []string{"Seafood", "grill"}},
			wantFilter: false,
		},
		{
			name:       "alias match across vocabularies",
			cuisines:   []string{"fried chicken"},
			candidate:  &core.Candidate{Cuisines: []string{"gà rán"}},
			wantFilter: false,
		},
		{
			name:       "diacritic insensitive match on name",
			cuisines:   []string{"bbq"},
			candidate:  &core.Candidate{Name: "Nhà Hàng Nướng Đà Nẵng"},
			wantFilter: false,
		},
		{
			name:       "no token matches",
			cuisines:   []string{"korean"},
			candidate:  &core.Candidate{Name: "Ocean Palace", Cuisines: []string{"seafood"}},
			wantFilter: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := queryCtx(&core.Query{Cuisines: tt.cuisines})
			got, err := f.ShouldFilter(context.Background(), rctx, tt.candidate)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.wantFilter {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.wantFilter)
			}
		})
	}
}

func TestRatingFilter(t *testing.T) {
	f := &RatingFilter{}

	tests := []struct {
		name       string
		ratingMin  *float64
		rating     *float64
		wantFilter bool
	}{
		{name: "no minimum keeps all", ratingMin: nil, rating: core.Float64(2.0), wantFilter: false},
		{name: "missing rating passes", ratingMin: core.Float64(4.0), rating: nil, wantFilter: false},
		{name: "below minimum filtered", ratingMin: core.Float64(4.0), rating: core.Float64(3.9), wantFilter: true},
		{name: "at minimum kept", ratingMin: core.Float64(4.0), rating: core.Float64(4.0), wantFilter: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := queryCtx(&core.Query{RatingMin: tt.ratingMin})
			c := &core.Candidate{Rating: tt.rating}
			got, err := f.ShouldFilter(context.Background(), rctx, c)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.wantFilter {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.wantFilter)
			}
		})
	}
}

func TestDistanceFilter(t *testing.T) {
	f := &DistanceFilter{}
	user := &core.GeoPoint{Lat: 16.065, Lng: 108.229}

	t.Run("within limit keeps and attaches distance", func(t *testing.T) {
		rctx := queryCtx(&core.Query{Location: user, DistanceLimitKm: core.Float64(5)})
		c := &core.Candidate{Location: &core.GeoPoint{Lat: 16.060, Lng: 108.224}}
		got, err := f.ShouldFilter(context.Background(), rctx, c)
		if err != nil {
			t.Fatalf("ShouldFilter() error = %v", err)
		}
		if got {
			t.Error("nearby candidate should be kept")
		}
		if c.DistanceKm == nil {
			t.Fatal("DistanceKm should be attached")
		}
		if *c.DistanceKm <= 0 || *c.DistanceKm > 5 {
			t.Errorf("unexpected distance %v", *c.DistanceKm)
		}
	})

	t.Run("beyond limit filtered", func(t *testing.T) {
		rctx := queryCtx(&core.Query{Location: user, DistanceLimitKm: core.Float64(5)})
		c := &core.Candidate{Location: &core.GeoPoint{Lat: 21.028, Lng: 105.854}} // 数百公里外
		got, err := f.ShouldFilter(context.Background(), rctx, c)
		if err != nil {
			t.Fatalf("ShouldFilter() error = %v", err)
		}
		if !got {
			t.Error("far candidate should be filtered")
		}
	})

	t.Run("missing candidate location passes without distance", func(t *testing.T) {
		rctx := queryCtx(&core.Query{Location: user, DistanceLimitKm: core.Float64(5)})
		c := &core.Candidate{}
		got, err := f.ShouldFilter(context.Background(), rctx, c)
		if err != nil {
			t.Fatalf("ShouldFilter() error = %v", err)
		}
		if got {
			t.Error("candidate without coordinates should pass")
		}
		if c.DistanceKm != nil {
			t.Error("DistanceKm should stay nil when coordinates are missing")
		}
	})

	t.Run("no limit attaches distance but keeps", func(t *testing.T) {
		rctx := queryCtx(&core.Query{Location: user})
		c := &core.Candidate{Location: &core.GeoPoint{Lat: 21.028, Lng: 105.854}}
		got, err := f.ShouldFilter(context.Background(), rctx, c)
		if err != nil {
			t.Fatalf("ShouldFilter() error = %v", err)
		}
		if got {
			t.Error("no limit means nothing is filtered by distance")
		}
		if c.DistanceKm == nil {
			t.Error("distance should still be attached for downstream features")
		}
	})
}

func TestNodeCombinesFilters(t *testing.T) {
	node := NewGeoAttributeNode(nil)
	rctx := queryCtx(&core.Query{
		Cuisines:  []string{"vietnamese"},
		RatingMin: core.Float64(4.0),
	})

	keep := &core.Candidate{ID: "keep", Cuisines: []string{"vietnamese"}, Rating: core.Float64(4.5)}
	lowRated := &core.Candidate{ID: "low", Cuisines: []string{"vietnamese"}, Rating: core.Float64(3.0)}

	out, err := node.Process(context.Background(), rctx, []*core.Candidate{keep, lowRated})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "keep" {
		t.Fatalf("Process() = %v, want only %q", ids(out), "keep")
	}
	if lbl, ok := lowRated.Labels["filtered"]; !ok || lbl.Source != "filter.rating" {
		t.Errorf("filtered label = %+v, want source filter.rating", lbl)
	}
}

func ids(cs []*core.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
