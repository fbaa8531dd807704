package core

import "testing"

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   *Query
		wantErr bool
	}{
		{name: "nil query", query: nil, wantErr: true},
		{name: "empty query valid", query: &Query{}, wantErr: false},
		{name: "sparse constraints valid", query: &Query{Cuisines: []string{"bbq"}}, wantErr: false},
		{name: "negative distance", query: &Query{DistanceLimitKm: Float64(-2)}, wantErr: true},
		{name: "negative rating", query: &Query{RatingMin: Float64(-0.1)}, wantErr: true},
		{name: "inverted price range", query: &Query{Price: &PriceRange{Min: Float64(200), Max: Float64(100)}}, wantErr: true},
		{name: "open price range valid", query: &Query{Price: &PriceRange{Min: Float64(200)}}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidInput(err) {
				t.Errorf("Validate() error should be invalid input, got %v", err)
			}
		})
	}
}
