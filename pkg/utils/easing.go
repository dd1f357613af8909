package utils

import "math"

// 缓动函数，输入进度 t ∈ [0, 1]，返回 [0, 1]
// 参考：https://easings.net/

// EaseOutQuad 二次方缓出：开始较快，结束慢
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
