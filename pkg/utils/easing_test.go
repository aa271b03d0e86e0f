package utils

import (
	"math"
	"testing"
)

// TestEasingEndpoints 所有缓动函数首尾必须是 0 和 1
func TestEasingEndpoints(t *testing.T) {
	funcs := map[string]func(float64) float64{
		"EaseOutCubic":  EaseOutCubic,
		"EaseOutQuad":   EaseOutQuad,
		"EaseOutBack":   EaseOutBack,
		"EaseOutBounce": EaseOutBounce,
	}

	for name, f := range funcs {
		t.Run(name, func(t *testing.T) {
			if v := f(0); math.Abs(v) > 1e-9 {
				t.Errorf("%s(0) = %v, 期望 0", name, v)
			}
			if v := f(1); math.Abs(v-1) > 1e-9 {
				t.Errorf("%s(1) = %v, 期望 1", name, v)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出中点
func TestEaseOutCubic(t *testing.T) {
	if v := EaseOutCubic(0.5); math.Abs(v-0.875) > 0.001 {
		t.Errorf("EaseOutCubic(0.5) = %v, 期望 0.875", v)
	}
}

// TestEaseOutBackOvershoots 回弹缓出中途超过 1
func TestEaseOutBackOvershoots(t *testing.T) {
	peak := 0.0
	for x := 0.0; x <= 1; x += 0.01 {
		peak = math.Max(peak, EaseOutBack(x))
	}
	if peak <= 1 {
		t.Errorf("EaseOutBack 应该超过 1, 最大值 %v", peak)
	}
}

// TestEaseOutBounceStaysInRange 弹跳缓出不超过 1
func TestEaseOutBounceStaysInRange(t *testing.T) {
	for x := 0.0; x <= 1; x += 0.01 {
		if v := EaseOutBounce(x); v < 0 || v > 1+1e-9 {
			t.Fatalf("EaseOutBounce(%v) = %v 超出范围", x, v)
		}
	}
}

// TestClamp01 测试范围限制
func TestClamp01(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0},
		{0.3, 0.3},
		{1.7, 1},
	}
	for _, tt := range tests {
		if v := Clamp01(tt.input); v != tt.expected {
			t.Errorf("Clamp01(%v) = %v, 期望 %v", tt.input, v, tt.expected)
		}
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0, 100, 0, 0},
		{"终点", 0, 100, 1, 100},
		{"中点", 0, 100, 0.5, 50},
		{"负数范围", -50, 50, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := Lerp(tt.a, tt.b, tt.t); math.Abs(v-tt.expected) > 1e-9 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, v, tt.expected)
			}
		})
	}
}
