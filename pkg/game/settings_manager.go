package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 游戏速度范围
const (
	MinGameSpeed = 0.5
	MaxGameSpeed = 4.0
)

// GameSettings 窗口程序的偏好设置
// 不影响模拟规则，只影响宿主如何驱动和显示模拟
type GameSettings struct {
	GameSpeed     float64 `yaml:"gameSpeed"`     // 帧时间倍率
	ShowRanges    bool    `yaml:"showRanges"`    // 是否显示所有塔的射程
	Fullscreen    bool    `yaml:"fullscreen"`    // 启动时是否全屏
	LastTowerType string  `yaml:"lastTowerType"` // 上次选择的塔
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		GameSpeed:     1.0,
		ShowRanges:    false,
		Fullscreen:    false,
		LastTowerType: "basic",
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败不影响创建
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
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
	loaded.GameSpeed = clampGameSpeed(loaded.GameSpeed)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil（降级模式，不报错）
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

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetGameSpeed 设置游戏速度，限制在 [MinGameSpeed, MaxGameSpeed]
// 仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetGameSpeed(speed float64) {
	sm.settings.GameSpeed = clampGameSpeed(speed)
}

// SetShowRanges 设置是否显示射程
func (sm *SettingsManager) SetShowRanges(show bool) {
	sm.settings.ShowRanges = show
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetLastTowerType 记录上次选择的塔
func (sm *SettingsManager) SetLastTowerType(towerType string) {
	sm.settings.LastTowerType = towerType
}

// clampGameSpeed 将速度限制在允许范围内，0 视为默认速度
func clampGameSpeed(speed float64) float64 {
	if speed == 0 {
		return 1.0
	}
	if speed < MinGameSpeed {
		return MinGameSpeed
	}
	if speed > MaxGameSpeed {
		return MaxGameSpeed
	}
	return speed
}
