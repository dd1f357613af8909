package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时目录中创建 gdata manager
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.GameSpeed != 1.0 {
		t.Errorf("GameSpeed: got %v, want 1.0", settings.GameSpeed)
	}
	if settings.ShowRanges {
		t.Error("ShowRanges: got true, want false")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.LastTowerType != "basic" {
		t.Errorf("LastTowerType: got %q, want basic", settings.LastTowerType)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := newTestGdata(t, "test_td_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetGameSpeed(2)
	sm1.SetShowRanges(true)
	sm1.SetFullscreen(true)
	sm1.SetLastTowerType("cannon")

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 新的设置管理器应加载到保存的值
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.GameSpeed != 2 {
		t.Errorf("Loaded GameSpeed: got %v, want 2", settings.GameSpeed)
	}
	if !settings.ShowRanges || !settings.Fullscreen {
		t.Errorf("Loaded flags: got %+v", settings)
	}
	if settings.LastTowerType != "cannon" {
		t.Errorf("Loaded LastTowerType: got %q, want cannon", settings.LastTowerType)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	sm.SetShowRanges(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail, got %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail, got %v", err)
	}
	if sm.GetSettings().ShowRanges {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestSetGameSpeedClamp 测试 SetGameSpeed 范围校验
func TestSetGameSpeedClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{1.5, 1.5},
		{0, 1.0},
		{0.1, MinGameSpeed},
		{10, MaxGameSpeed},
		{MaxGameSpeed, MaxGameSpeed},
	}

	for _, tt := range tests {
		sm.SetGameSpeed(tt.input)
		if got := sm.GetSettings().GameSpeed; got != tt.expected {
			t.Errorf("SetGameSpeed(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
