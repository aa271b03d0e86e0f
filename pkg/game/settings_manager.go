package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 用户偏好设置
type Settings struct {
	ChimeEnabled bool    `yaml:"chimeEnabled"` // 庆祝提示音开关（M 键切换）
	ChimeVolume  float64 `yaml:"chimeVolume"`  // 提示音音量 0.0 ~ 1.0
	AutoRotate   bool    `yaml:"autoRotate"`   // 启动时是否自动轮播（P 键切换）
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		ChimeEnabled: true,
		ChimeVolume:  0.8,
		AutoRotate:   true,
		Fullscreen:   false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *Settings
}

const (
	settingsObject   = "settings"
	settingsProperty = "user"
)

// NewSettingsManager 创建设置管理器
//
// 加载失败不是致命错误：记录警告并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.ChimeVolume = clampVolume(loaded.ChimeVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings 返回当前设置
func (sm *SettingsManager) Settings() *Settings {
	return sm.settings
}

// ToggleChime 切换提示音开关并返回新状态
// 注意：仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) ToggleChime() bool {
	sm.settings.ChimeEnabled = !sm.settings.ChimeEnabled
	return sm.settings.ChimeEnabled
}

// SetChimeVolume 设置提示音音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetChimeVolume(volume float64) {
	sm.settings.ChimeVolume = clampVolume(volume)
}

// SetAutoRotate 设置自动轮播偏好
func (sm *SettingsManager) SetAutoRotate(enabled bool) {
	sm.settings.AutoRotate = enabled
}

// SetFullscreen 设置全屏偏好
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
