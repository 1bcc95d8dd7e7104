package main

import (
	"math"
	"testing"
)

func TestToInt32ID(t *testing.T) {
	tests := []struct {
		in   int
		want int32
		ok   bool
	}{
		{1, 1, true},
		{math.MaxInt32, math.MaxInt32, true},
		{0, 0, false},
		{-3, 0, false},
		{math.MaxInt32 + 1, 0, false},
		{1 << 40, 0, false},
	}
	for _, tt := range tests {
		got, err := toInt32ID("company-id", tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("toInt32ID(%d): err = %v, want ok %v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("toInt32ID(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
