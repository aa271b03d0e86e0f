//go:build mobile

package utils

// IsMobile 移动端构建时恒为 true（无窗口，全屏和 F11 均不可用）
func IsMobile() bool {
	return true
}
