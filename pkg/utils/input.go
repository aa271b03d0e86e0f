// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查本帧是否刚发生点击或触摸
// 优先检测触摸（移动设备），返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// WheelSteps 返回本帧滚轮的纵向格数（向上为正）
func WheelSteps() int {
	_, dy := ebiten.Wheel()
	switch {
	case dy > 0:
		return 1
	case dy < 0:
		return -1
	}
	return 0
}
