package core

import (
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  float64 // NaN means unparseable
	}{
		{"20.111", 20.111},
		{"  20.111  ", 20.111},
		{"+1.5", 1.5},
		{"-0.25", -0.25},
		{".5", 0.5},
		{"12.", 12},
		{"20.111s", 20.111},
		{"1e3", 1000},
		{"1e", 1},
		{"2 laps", 2},
		{"", math.NaN()},
		{"DNF", math.NaN()},
		{"-", math.NaN()},
		{"1,5", 1},
	}

	for _, tt := range tests {
		got := ParseDecimal(tt.input)
		if math.IsNaN(tt.want) {
			if !math.IsNaN(got) {
				t.Errorf("ParseDecimal(%q) = %v, want NaN", tt.input, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDecimal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"2 laps", 2, true},
		{"12laps", 12, true},
		{" -3", -3, true},
		{"lap", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLeadingInt(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLeadingInt(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCompareFloat(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		a, b float64
		want int
	}{
		{1, 2, -1},
		{2, 1, 1},
		{1, 1, 0},
		{1, nan, -1},
		{nan, 1, 1},
		{inf, 1, 1},
		{nan, inf, 0},
		{math.Inf(-1), 1, 1},
	}
	for _, tt := range tests {
		if got := compareFloat(tt.a, tt.b); got != tt.want {
			t.Errorf("compareFloat(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
