package systems

import (
	"log"
	"math"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// MinEnemySpeed 冰冻和减速叠加后的最低速度（格/秒）
const MinEnemySpeed = 0.1

// EnemySystem 敌人状态机
//
// 每个存活敌人每步依次执行：
//  1. 状态效果计时和持续伤害
//  2. 能力计时（回血、护盾回复、召唤、治疗光环）
//  3. 眩晕时跳过移动
//  4. 计算有效速度
//  5. 沿路径向下一个路径点移动，越过时吸附并推进 PathIndex（每步最多一个路径点）
//
// 死亡和到达终点的处理由模拟循环负责。
type EnemySystem struct {
	entityManager *ecs.EntityManager
	combat        *Combat
	path          *grid.GridPath
	enemies       *config.EnemyConfig
	spawnQueue    *SpawnQueue

	verbose bool
}

// NewEnemySystem 创建敌人系统
func NewEnemySystem(em *ecs.EntityManager, combat *Combat, path *grid.GridPath, enemies *config.EnemyConfig, queue *SpawnQueue) *EnemySystem {
	return &EnemySystem{
		entityManager: em,
		combat:        combat,
		path:          path,
		enemies:       enemies,
		spawnQueue:    queue,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *EnemySystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 按创建顺序更新所有敌人
func (s *EnemySystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		s.UpdateEnemy(id, dt)
	}
}

// UpdateEnemy 更新单个敌人，已死亡或已移除的敌人不做任何事
func (s *EnemySystem) UpdateEnemy(id ecs.EntityID, dt float64) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || !enemy.Active || s.entityManager.IsMarkedForDestruction(id) {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	status, ok := ecs.GetComponent[*components.StatusEffectsComponent](s.entityManager, id)
	if !ok {
		status = &components.StatusEffectsComponent{}
	}

	s.updateStatusEffects(id, status, dt)
	if !enemy.Active {
		// 被持续伤害杀死
		return
	}

	if abilities, ok := ecs.GetComponent[*components.AbilitiesComponent](s.entityManager, id); ok {
		s.updateAbilities(id, enemy, pos, abilities, dt)
	}

	if status.Stun.Active {
		return
	}

	enemy.Speed = EffectiveSpeed(enemy, status)
	s.move(enemy, pos, dt)
}

// EffectiveSpeed 基础速度 × (1 − 冰冻) × (1 − 减速) × 阶段倍率，不低于 MinEnemySpeed
func EffectiveSpeed(enemy *components.EnemyComponent, status *components.StatusEffectsComponent) float64 {
	speed := enemy.BaseSpeed
	if status.Freeze.Active {
		speed *= 1 - status.Freeze.Magnitude
	}
	if status.Slow.Active {
		speed *= 1 - status.Slow.Magnitude
	}
	if enemy.PhaseSpeedMultiplier > 0 {
		speed *= enemy.PhaseSpeedMultiplier
	}
	return math.Max(MinEnemySpeed, speed)
}

func (s *EnemySystem) updateStatusEffects(id ecs.EntityID, status *components.StatusEffectsComponent, dt float64) {
	dots := []struct {
		effect     *components.StatusEffect
		damageType types.DamageType
	}{
		{&status.Burn, types.DamageBurn},
		{&status.Poison, types.DamagePoison},
	}
	for _, dot := range dots {
		killed := false
		tickDamageOverTime(dot.effect, dt, func(amount float64) {
			killed = s.combat.TakeDamage(id, amount, dot.damageType)
		})
		if killed {
			if s.verbose {
				log.Printf("[EnemySystem] Entity %d killed by %s", id, dot.damageType)
			}
			return
		}
		countDown(dot.effect, dt)
	}

	countDown(&status.Freeze, dt)
	countDown(&status.Slow, dt)
	countDown(&status.Stun, dt)
}

func (s *EnemySystem) updateAbilities(id ecs.EntityID, enemy *components.EnemyComponent, pos *components.PositionComponent, abilities *components.AbilitiesComponent, dt float64) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return
	}

	tickAbility(&abilities.Regeneration, dt, func(a *components.Ability) {
		health.Health = math.Min(health.MaxHealth, health.Health+a.Rate)
	})

	tickAbility(&abilities.ShieldRegen, dt, func(a *components.Ability) {
		health.Shields = math.Min(health.MaxShields, health.Shields+a.Rate)
	})

	tickAbility(&abilities.MinionSpawn, dt, func(a *components.Ability) {
		s.spawnMinion(id, enemy, pos, a)
	})

	tickAbility(&abilities.HealAura, dt, func(a *components.Ability) {
		s.healNearby(id, pos, a)
	})
}

// spawnMinion 场上（含待生成的）小兵数量未达上限时请求召唤一个
func (s *EnemySystem) spawnMinion(id ecs.EntityID, enemy *components.EnemyComponent, pos *components.PositionComponent, a *components.Ability) {
	if s.enemies == nil || s.enemies.MinionKind == "" || s.spawnQueue == nil {
		return
	}
	kind := s.enemies.MinionKind
	if s.countActive(kind)+s.spawnQueue.CountKind(kind) >= a.MaxMinions {
		return
	}
	s.spawnQueue.Enqueue(SpawnRequest{
		Kind:      kind,
		Wave:      enemy.Wave,
		X:         pos.X,
		Y:         pos.Y,
		PathIndex: enemy.PathIndex,
	})
	if s.verbose {
		log.Printf("[EnemySystem] Entity %d summoned a %s", id, kind)
	}
}

// healNearby 为范围内的其他存活敌人回复生命
func (s *EnemySystem) healNearby(id ecs.EntityID, pos *components.PositionComponent, a *components.Ability) {
	for _, other := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		if other == id || !s.combat.IsActive(other) {
			continue
		}
		otherPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, other)
		if !ok {
			continue
		}
		if utils.Distance(pos.X, pos.Y, otherPos.X, otherPos.Y) > a.Range {
			continue
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, other); ok {
			health.Health = math.Min(health.MaxHealth, health.Health+a.Rate)
		}
	}
}

func (s *EnemySystem) countActive(kind types.EnemyKind) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		if enemy.Kind == kind && enemy.Active && !s.entityManager.IsMarkedForDestruction(id) {
			count++
		}
	}
	return count
}

// move 向下一个路径点移动，越过时吸附到路径点
func (s *EnemySystem) move(enemy *components.EnemyComponent, pos *components.PositionComponent, dt float64) {
	next := enemy.PathIndex + 1
	if next > s.path.LastIndex() {
		return
	}
	tx, ty := s.path.WaypointCenter(next)
	dx, dy, dist := utils.Direction(pos.X, pos.Y, tx, ty)
	step := enemy.Speed * s.path.TileSize() * dt

	if dist <= step {
		pos.X, pos.Y = tx, ty
		enemy.PathIndex = next
		return
	}
	pos.X += dx * step
	pos.Y += dy * step
}
