package game

import (
	"path/filepath"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tempDir, ".local", "share"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, ".config"))

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if !settings.ChimeEnabled {
		t.Error("ChimeEnabled: got false, want true")
	}
	if settings.ChimeVolume != 0.8 {
		t.Errorf("ChimeVolume: got %v, want 0.8", settings.ChimeVolume)
	}
	if !settings.AutoRotate {
		t.Error("AutoRotate: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestSettingsManagerNilGdata 测试降级模式
func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.Settings() == nil {
		t.Fatal("Settings() returned nil in degraded mode")
	}
	sm.ToggleChime()
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsSaveAndLoad 测试保存后重新加载
func TestSettingsSaveAndLoad(t *testing.T) {
	m := openTestGdata(t, "test_rising_settings")

	sm := NewSettingsManager(m)
	if enabled := sm.ToggleChime(); enabled {
		t.Fatal("ToggleChime() should disable the chime")
	}
	sm.SetChimeVolume(0.3)
	sm.SetAutoRotate(false)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(m)
	s := reloaded.Settings()
	if s.ChimeEnabled {
		t.Error("ChimeEnabled should persist as false")
	}
	if s.ChimeVolume != 0.3 {
		t.Errorf("ChimeVolume: got %v, want 0.3", s.ChimeVolume)
	}
	if s.AutoRotate {
		t.Error("AutoRotate should persist as false")
	}
}

// TestSettingsCorruptedData 测试损坏数据回退到默认值
func TestSettingsCorruptedData(t *testing.T) {
	m := openTestGdata(t, "test_rising_settings_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("chimeEnabled: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{gdataManager: m, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupted data")
	}
	if !sm.Settings().ChimeEnabled {
		t.Error("corrupted data should fall back to defaults")
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
