package simulation

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/types"
)

// 只读视图，供渲染和界面使用。视图是值拷贝，修改它们不会影响模拟。

// EnemyView 敌人的只读视图
type EnemyView struct {
	ID         ecs.EntityID
	Kind       types.EnemyKind
	X, Y       float64
	Size       float64
	Health     float64
	MaxHealth  float64
	Shields    float64
	MaxShields float64
	PathIndex  int
	Phase      int

	IsFlying      bool
	IsCamouflaged bool
	IsDetected    bool
	IsBoss        bool

	Burning  bool
	Frozen   bool
	Poisoned bool
	Slowed   bool
	Stunned  bool
}

// TowerView 塔的只读视图
type TowerView struct {
	ID          ecs.EntityID
	Type        types.TowerType
	Name        string
	Col, Row    int
	X, Y        float64
	Range       float64 // 像素，含倍率
	Damage      float64 // 含倍率
	FireRate    float64 // 含倍率
	Target      ecs.EntityID
	Level       int
	UpgradeType types.UpgradeType
	Special     types.Special
	SellValue   int
}

// ProjectileView 投射物的只读视图
type ProjectileView struct {
	ID       ecs.EntityID
	X, Y     float64
	VX, VY   float64
	Special  types.Special
	Critical bool
	Cosmetic bool
}

// StateView 全局状态的只读视图
type StateView struct {
	RunID string
	Lives int
	Money int
	Score int

	Wave           int
	WaveActive     bool
	BossWave       bool
	EnemiesSpawned int
	EnemiesPerWave int
	TimeToNextWave float64

	EnemiesKilled int
	BossesKilled  int
	TowersBuilt   int

	SelectedTowerType types.TowerType

	Running  bool
	Paused   bool
	GameOver bool
	Elapsed  float64
	Steps    uint64
}

// Enemies 返回所有存活敌人
func (l *Loop) Enemies() []EnemyView {
	em := l.entityManager
	ids := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.HealthComponent](em)
	views := make([]EnemyView, 0, len(ids))
	for _, id := range ids {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		if !enemy.Active || em.IsMarkedForDestruction(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)

		view := EnemyView{
			ID:            id,
			Kind:          enemy.Kind,
			X:             pos.X,
			Y:             pos.Y,
			Size:          enemy.Size,
			Health:        health.Health,
			MaxHealth:     health.MaxHealth,
			Shields:       health.Shields,
			MaxShields:    health.MaxShields,
			PathIndex:     enemy.PathIndex,
			Phase:         enemy.Phase,
			IsFlying:      enemy.IsFlying,
			IsCamouflaged: enemy.IsCamouflaged,
			IsDetected:    enemy.IsDetected,
			IsBoss:        enemy.IsBoss,
		}
		if status, ok := ecs.GetComponent[*components.StatusEffectsComponent](em, id); ok {
			view.Burning = status.Burn.Active
			view.Frozen = status.Freeze.Active
			view.Poisoned = status.Poison.Active
			view.Slowed = status.Slow.Active
			view.Stunned = status.Stun.Active
		}
		views = append(views, view)
	}
	return views
}

// Towers 返回所有塔
func (l *Loop) Towers() []TowerView {
	em := l.entityManager
	tileSize := l.path.TileSize()
	ids := ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](em)
	views := make([]TowerView, 0, len(ids))
	for _, id := range ids {
		if em.IsMarkedForDestruction(id) {
			continue
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		views = append(views, TowerView{
			ID:          id,
			Type:        tower.Type,
			Name:        tower.Name,
			Col:         tower.Col,
			Row:         tower.Row,
			X:           pos.X,
			Y:           pos.Y,
			Range:       systems.EffectiveRange(tower, tileSize),
			Damage:      systems.EffectiveDamage(tower),
			FireRate:    systems.EffectiveFireRate(tower),
			Target:      tower.Target,
			Level:       tower.Level,
			UpgradeType: tower.UpgradeType,
			Special:     tower.Special,
			SellValue:   tower.SellValue,
		})
	}
	return views
}

// Projectiles 返回所有飞行中的投射物
func (l *Loop) Projectiles() []ProjectileView {
	em := l.entityManager
	ids := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](em)
	views := make([]ProjectileView, 0, len(ids))
	for _, id := range ids {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if !proj.Active || em.IsMarkedForDestruction(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		views = append(views, ProjectileView{
			ID:       id,
			X:        pos.X,
			Y:        pos.Y,
			VX:       vel.VX,
			VY:       vel.VY,
			Special:  proj.Special,
			Critical: proj.Critical,
			Cosmetic: proj.Cosmetic,
		})
	}
	return views
}

// State 返回全局状态
func (l *Loop) State() StateView {
	gs := l.gameState
	return StateView{
		RunID:             gs.RunID,
		Lives:             gs.Lives,
		Money:             gs.Money,
		Score:             gs.Score,
		Wave:              gs.Wave,
		WaveActive:        gs.WaveActive,
		BossWave:          l.rules.Waves.IsBossWave(gs.Wave),
		EnemiesSpawned:    gs.EnemiesSpawned,
		EnemiesPerWave:    gs.EnemiesPerWave,
		TimeToNextWave:    gs.TimeToNextWave(),
		EnemiesKilled:     gs.EnemiesKilled,
		BossesKilled:      gs.BossesKilled,
		TowersBuilt:       gs.TowersBuilt,
		SelectedTowerType: gs.SelectedTowerType,
		Running:           l.running,
		Paused:            l.paused,
		GameOver:          gs.GameOver,
		Elapsed:           l.elapsed,
		Steps:             l.steps,
	}
}

// Events 事件总线，用于订阅击杀、建造、波次等事件
func (l *Loop) Events() *game.EventBus { return l.events }

// Path 地图路径
func (l *Loop) Path() *grid.GridPath { return l.path }

// Rules 当前使用的规则
func (l *Loop) Rules() *config.Rules { return l.rules }
