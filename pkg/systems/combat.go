package systems

import (
	"log"
	"math"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
)

// 状态效果参数
const (
	BurnDamagePerPotency   = 10.0
	BurnInterval           = 0.5
	PoisonDamagePerPotency = 5.0
	PoisonInterval         = 1.0

	FreezeFactor = 0.5
	FreezeCap    = 0.8
	SlowFactor   = 0.3
	SlowCap      = 0.7
)

// Combat 伤害结算
//
// 职责：
//   - 护甲 → 护盾 → 生命的伤害流程
//   - 状态效果的施加和叠加规则
//   - 受伤后的种类行为（阶段切换、分裂标记）
//
// 架构说明：
//   - 不是 ECS 系统，没有 Update；由 EnemySystem、TowerSystem、ProjectileSystem 共享
//   - 种类行为由敌人属性驱动：MaxPhases > 0 的敌人按血量切换阶段，
//     SplitCount > 0 的敌人死亡时标记分裂，SlowResistance > 0 的敌人削弱减速/冰冻
type Combat struct {
	entityManager *ecs.EntityManager
	enemies       *config.EnemyConfig
	gameState     *game.GameState
	events        *game.EventBus
}

// NewCombat 创建伤害结算器
func NewCombat(em *ecs.EntityManager, enemies *config.EnemyConfig, gs *game.GameState, events *game.EventBus) *Combat {
	return &Combat{
		entityManager: em,
		enemies:       enemies,
		gameState:     gs,
		events:        events,
	}
}

// CanBeTargeted 隐形敌人在被显形之前不能被选为目标
func CanBeTargeted(enemy *components.EnemyComponent) bool {
	return !enemy.IsCamouflaged || enemy.IsDetected
}

// IsTargetable 实体存在、存活且可被选为目标
func (c *Combat) IsTargetable(id ecs.EntityID) bool {
	enemy, ok := c.activeEnemy(id)
	return ok && CanBeTargeted(enemy)
}

// IsActive 实体存在且存活（不检查隐形）
func (c *Combat) IsActive(id ecs.EntityID) bool {
	_, ok := c.activeEnemy(id)
	return ok
}

func (c *Combat) activeEnemy(id ecs.EntityID) (*components.EnemyComponent, bool) {
	if !c.entityManager.IsAlive(id) || c.entityManager.IsMarkedForDestruction(id) {
		return nil, false
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](c.entityManager, id)
	if !ok || !enemy.Active {
		return nil, false
	}
	return enemy, true
}

// TakeDamage 对敌人造成伤害
//
// 非真实伤害先按护甲削减，剩余部分先由护盾吸收，再扣生命。
// 返回本次调用是否击杀了敌人；已死亡的敌人不再受伤。
func (c *Combat) TakeDamage(id ecs.EntityID, amount float64, damageType types.DamageType) bool {
	enemy, ok := c.activeEnemy(id)
	if !ok {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](c.entityManager, id)
	if !ok {
		return false
	}

	if damageType != types.DamageTrue {
		amount *= 1 - enemy.Armor
	}
	if amount <= 0 {
		return false
	}

	if health.Shields > 0 {
		absorbed := math.Min(health.Shields, amount)
		health.Shields -= absorbed
		amount -= absorbed
	}
	health.Health -= amount

	if health.Health <= 0 {
		enemy.Active = false
		if enemy.SplitCount > 0 && enemy.SplitInto != "" {
			enemy.ShouldSplit = true
		}
		return true
	}

	if enemy.MaxPhases > 0 {
		c.updatePhase(id, enemy, health)
	}
	return false
}

// updatePhase 按剩余血量比例重新计算 Boss 阶段
func (c *Combat) updatePhase(id ecs.EntityID, enemy *components.EnemyComponent, health *components.HealthComponent) {
	if health.MaxHealth <= 0 {
		return
	}
	phase := int(math.Ceil(health.Health / health.MaxHealth * float64(enemy.MaxPhases)))
	if phase < 1 {
		phase = 1
	}
	if phase > enemy.MaxPhases {
		phase = enemy.MaxPhases
	}
	if phase == enemy.Phase {
		return
	}
	enemy.Phase = phase

	if c.enemies != nil {
		if stats, ok := c.enemies.Stats(enemy.Kind); ok {
			if p, ok := stats.Phase(phase); ok {
				enemy.PhaseSpeedMultiplier = p.SpeedMultiplier
				if abilities, ok := ecs.GetComponent[*components.AbilitiesComponent](c.entityManager, id); ok {
					entities.ApplyAbilitySet(abilities, p.Abilities, enemy.Wave)
				}
			}
		}
	}

	log.Printf("[Combat] %s (entity %d) entered phase %d/%d", enemy.Kind, id, phase, enemy.MaxPhases)
	c.events.Publish(game.Event{
		Type:      game.EventBossPhaseChanged,
		RunID:     c.runID(),
		Wave:      enemy.Wave,
		Entity:    id,
		EnemyKind: enemy.Kind,
		Phase:     phase,
	})
}

// ApplyStatusEffect 对敌人施加状态效果
//
// 燃烧、中毒、减速取新旧时长的较大值（刷新而不是叠加时长），中毒额外叠加层数；
// 冰冻和眩晕直接设置时长。冰冻与减速的速度削减按乘法叠加。
func (c *Combat) ApplyStatusEffect(id ecs.EntityID, kind types.StatusKind, duration, potency float64) {
	enemy, ok := c.activeEnemy(id)
	if !ok {
		return
	}
	status, ok := ecs.GetComponent[*components.StatusEffectsComponent](c.entityManager, id)
	if !ok {
		return
	}

	// 减速抗性
	if enemy.SlowResistance > 0 && (kind == types.StatusSlow || kind == types.StatusFreeze) {
		potency *= 1 - enemy.SlowResistance
		duration *= 1 - enemy.SlowResistance
	}

	switch kind {
	case types.StatusBurn:
		e := &status.Burn
		e.Remaining = math.Max(e.Remaining, duration)
		e.Damage = potency * BurnDamagePerPotency
		e.Interval = BurnInterval
		e.Accumulator = 0
		e.Active = true
	case types.StatusPoison:
		e := &status.Poison
		e.Remaining = math.Max(e.Remaining, duration)
		e.Damage = potency * PoisonDamagePerPotency
		e.Interval = PoisonInterval
		if e.Stacks < components.MaxPoisonStacks {
			e.Stacks++
		}
		e.Active = true
	case types.StatusFreeze:
		e := &status.Freeze
		e.Remaining = duration
		e.Magnitude = math.Min(FreezeCap, potency*FreezeFactor)
		e.Active = true
	case types.StatusSlow:
		e := &status.Slow
		e.Remaining = math.Max(e.Remaining, duration)
		e.Magnitude = math.Min(SlowCap, potency*SlowFactor)
		e.Active = true
	case types.StatusStun:
		e := &status.Stun
		e.Remaining = duration
		e.Active = true
	}
}

func (c *Combat) runID() string {
	if c.gameState == nil {
		return ""
	}
	return c.gameState.RunID
}
