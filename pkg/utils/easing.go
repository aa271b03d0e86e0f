package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数控制卡片入场动画的速度曲线。
// 所有函数接受进度值 t ∈ [0, 1]，t=0 返回 0，t=1 返回 1。
//
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出，开始快结束慢（滑入）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出（淡入）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutBack 回弹缓出，中途略微超过 1 再回落（缩放）
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// EaseOutBounce 弹跳缓出，落地后弹起三次
func EaseOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
