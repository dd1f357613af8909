package entities

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/types"
)

// NewEnemyEntity 在路径起点创建敌人
//
// 参数:
//   - em: 实体管理器
//   - enemies: 敌人属性表
//   - path: 地图路径
//   - kind: 敌人种类
//   - wave: 当前波次，用于数值缩放
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID
//   - error: 种类未知时返回错误
func NewEnemyEntity(em *ecs.EntityManager, enemies *config.EnemyConfig, path *grid.GridPath, kind types.EnemyKind, wave int) (ecs.EntityID, error) {
	if path == nil {
		return 0, fmt.Errorf("path cannot be nil")
	}
	x, y := path.WaypointCenter(0)
	return NewEnemyEntityAt(em, enemies, kind, wave, x, y, 0)
}

// NewEnemyEntityAt 在指定位置创建敌人
// 用于分裂体和 Boss 召唤的小兵，它们从父实体的位置和路径进度继续前进
func NewEnemyEntityAt(em *ecs.EntityManager, enemies *config.EnemyConfig, kind types.EnemyKind, wave int, x, y float64, pathIndex int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if enemies == nil {
		return 0, fmt.Errorf("enemy config cannot be nil")
	}
	stats, ok := enemies.Stats(kind)
	if !ok {
		return 0, fmt.Errorf("unknown enemy kind %q", kind)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})

	enemy := &components.EnemyComponent{
		Kind:                 kind,
		Wave:                 wave,
		Reward:               stats.Reward.IntAt(wave),
		Armor:                stats.Armor,
		BaseSpeed:            stats.Speed,
		Speed:                stats.Speed,
		Size:                 stats.Size,
		PathIndex:            pathIndex,
		IsFlying:             stats.Flying,
		IsCamouflaged:        stats.Camouflaged,
		IsBoss:               stats.Boss,
		Active:               true,
		Phase:                stats.MaxPhases,
		MaxPhases:            stats.MaxPhases,
		PhaseSpeedMultiplier: 1,
		SlowResistance:       stats.SlowResistance,
		SplitInto:            stats.SplitInto,
		SplitCount:           stats.SplitCount,
	}

	health := stats.Health.At(wave)
	shields := stats.Shields.At(wave)
	em.AddComponent(entityID, &components.HealthComponent{
		Health:     health,
		MaxHealth:  health,
		Shields:    shields,
		MaxShields: shields,
	})

	abilities := &components.AbilitiesComponent{}
	ApplyAbilitySet(abilities, stats.Abilities, wave)

	// 阶段 Boss 从满阶段开始
	if phase, ok := stats.Phase(stats.MaxPhases); ok {
		enemy.PhaseSpeedMultiplier = phase.SpeedMultiplier
		ApplyAbilitySet(abilities, phase.Abilities, wave)
	}

	em.AddComponent(entityID, enemy)
	em.AddComponent(entityID, abilities)
	em.AddComponent(entityID, &components.StatusEffectsComponent{})

	return entityID, nil
}

// ApplyAbilitySet 开启配置中列出的能力，未列出的能力保持原状
func ApplyAbilitySet(abilities *components.AbilitiesComponent, set config.AbilitySet, wave int) {
	enable := func(dst *components.Ability, src *config.AbilityStats) {
		if src == nil {
			return
		}
		*dst = components.Ability{
			Active:     true,
			Rate:       src.Rate.At(wave),
			Interval:   src.Interval.At(wave),
			Range:      src.Range,
			MaxMinions: src.MaxMinions.IntAt(wave),
		}
	}
	enable(&abilities.Regeneration, set.Regeneration)
	enable(&abilities.ShieldRegen, set.ShieldRegen)
	enable(&abilities.MinionSpawn, set.MinionSpawn)
	enable(&abilities.HealAura, set.HealAura)
}
