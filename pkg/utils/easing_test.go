package utils

import (
	"math"
	"testing"
)

func TestEasing(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(float64) float64
		input    float64
		expected float64
	}{
		{"缓出起点", EaseOutQuad, 0, 0},
		{"缓出中点", EaseOutQuad, 0.5, 0.75},
		{"缓出终点", EaseOutQuad, 1, 1},
		{"缓出超出范围", EaseOutQuad, 2, 1},
		{"缓出负数", EaseOutQuad, -1, 0},
		{"限制", Clamp01, 1.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Expected 12.5, got %v", got)
	}
	if got := Lerp(10, 20, 0); got != 10 {
		t.Errorf("Expected 10, got %v", got)
	}
}
