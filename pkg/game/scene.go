package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene names understood by the SceneManager factory.
const (
	SceneSpotlight = "spotlight"
	SceneCompose   = "compose"
)

// Scene is one screen of the host (the spotlight view, the compose form).
// The engine keeps running underneath whichever scene is active.
type Scene interface {
	// Update handles input. deltaTime is the time since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，场景在程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
