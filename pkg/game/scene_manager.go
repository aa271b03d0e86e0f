package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按名字创建场景，避免 game 与 scenes 之间的循环依赖
type SceneFactory func(name string) Scene

// SceneManager controls which scene is active. Only one scene's Update and
// Draw run per frame.
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
}

// NewSceneManager creates a manager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo makes scene the active scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName returns the name of the last scene created through Load.
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Load 通过工厂函数创建并切换到指定名字的场景
// 返回是否切换成功
func (sm *SceneManager) Load(name string) bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(name)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", name)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentName = name
	log.Printf("[SceneManager] 切换到场景: %s", name)
	return true
}

// Update updates the active scene, if any.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the active scene, if any.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
