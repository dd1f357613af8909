package game

import (
	"time"

	"github.com/gonewx/towerdefense/pkg/components"
)

// BattleSaveVersion 战斗存档版本号
// 用于版本兼容性检查，当数据结构发生不兼容变更时递增
const BattleSaveVersion = 1

// BattleSaveData 战斗存档数据结构
//
// 包含恢复一局游戏所需的全部状态：GameState 和敌人、塔、投射物集合。
// 实体保存原来的 ID，恢复时重新分配 ID 并改写目标引用。
type BattleSaveData struct {
	// 版本和元数据
	Version  int       // 存档版本号，用于兼容性检查
	SaveTime time.Time // 保存时间
	RunID    string

	// 全局状态
	Lives             int
	Money             int
	Score             int
	Wave              int
	WaveActive        bool
	WaveTimer         float64
	WaveDelay         float64
	SpawnTimer        float64
	SpawnDelay        float64
	EnemiesPerWave    int
	EnemiesSpawned    int
	EnemiesKilled     int
	BossesKilled      int
	TowersBuilt       int
	SelectedTowerType string

	// 实体数据（按创建顺序）
	Enemies     []EnemyData
	Towers      []TowerData
	Projectiles []ProjectileData
}

// EnemyData 敌人序列化数据
type EnemyData struct {
	ID        uint64
	X, Y      float64
	Enemy     components.EnemyComponent
	Health    components.HealthComponent
	Status    components.StatusEffectsComponent
	Abilities components.AbilitiesComponent
}

// TowerData 塔序列化数据
type TowerData struct {
	ID    uint64
	X, Y  float64
	Tower components.TowerComponent
}

// ProjectileData 投射物序列化数据
type ProjectileData struct {
	ID         uint64
	X, Y       float64
	VX, VY     float64
	Projectile components.ProjectileComponent
	Lifetime   *components.LifetimeComponent // 仅光束显示用投射物
}

// BattleSaveInfo 战斗存档信息预览
//
// 用于在不恢复实体的情况下显示存档概要
type BattleSaveInfo struct {
	SaveTime time.Time
	Wave     int
	Lives    int
	Money    int
	Score    int
}

// NewBattleSaveData 创建一个新的战斗存档数据结构
func NewBattleSaveData() *BattleSaveData {
	return &BattleSaveData{
		Version:     BattleSaveVersion,
		SaveTime:    time.Now(),
		Enemies:     []EnemyData{},
		Towers:      []TowerData{},
		Projectiles: []ProjectileData{},
	}
}

// ToBattleSaveInfo 从完整存档数据提取预览信息
func (b *BattleSaveData) ToBattleSaveInfo() *BattleSaveInfo {
	return &BattleSaveInfo{
		SaveTime: b.SaveTime,
		Wave:     b.Wave,
		Lives:    b.Lives,
		Money:    b.Money,
		Score:    b.Score,
	}
}
