package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain ascii lowered", in: "Fried Chicken", want: "fried chicken"},
		{name: "vietnamese tone marks stripped", in: "Gà Rán", want: "ga ran"},
		{name: "stacked diacritics stripped", in: "Phở Bò", want: "pho bo"},
		{name: "empty string", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{" Gà Rán ", "", "Hải Sản"})
	want := []string{"ga ran", "hai san"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAll() = %v, want %v", got, want)
	}
}
