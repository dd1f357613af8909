package systems

import (
	"log"
	"math"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// TowerSystem 塔的索敌和攻击
//
// 每步先执行光环塔（增益其他塔、显形隐形敌人、减速），再执行攻击塔，
// 两轮都按创建顺序遍历。倍率在每步开始前由 ResetMultipliers 重置为 1。
type TowerSystem struct {
	entityManager *ecs.EntityManager
	combat        *Combat
	rules         *config.Rules
	path          *grid.GridPath
	rng           RandomSource

	verbose bool
}

// NewTowerSystem 创建塔系统
func NewTowerSystem(em *ecs.EntityManager, combat *Combat, rules *config.Rules, path *grid.GridPath, rng RandomSource) *TowerSystem {
	return &TowerSystem{
		entityManager: em,
		combat:        combat,
		rules:         rules,
		path:          path,
		rng:           rng,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *TowerSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// ResetMultipliers 把所有塔的倍率重置为 1，并清除敌人的显形标记
// 光环塔需要每步重新施加
func (s *TowerSystem) ResetMultipliers() {
	for _, id := range ecs.GetEntitiesWith1[*components.TowerComponent](s.entityManager) {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
		tower.DamageMultiplier = 1
		tower.RangeMultiplier = 1
		tower.FireRateMultiplier = 1
	}
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		enemy.IsDetected = false
	}
}

// Update 先处理光环塔，再处理攻击塔
func (s *TowerSystem) Update(dt float64) {
	towers := ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.entityManager)

	for _, id := range towers {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
		if tower.Special.IsAura() {
			s.applyAura(id, tower)
		}
	}

	for _, id := range towers {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
		if !tower.Special.IsAura() {
			s.updateAttacker(id, tower, dt)
		}
	}
}

// EffectiveRange 有效射程（像素）
func EffectiveRange(tower *components.TowerComponent, tileSize float64) float64 {
	return tower.Range * tower.RangeMultiplier * tileSize
}

// EffectiveDamage 有效伤害
func EffectiveDamage(tower *components.TowerComponent) float64 {
	return tower.Damage * tower.DamageMultiplier
}

// EffectiveFireRate 有效射速
func EffectiveFireRate(tower *components.TowerComponent) float64 {
	return tower.FireRate * tower.FireRateMultiplier
}

// applyAura 光环塔的效果，范围使用基础射程
func (s *TowerSystem) applyAura(id ecs.EntityID, tower *components.TowerComponent) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	radius := tower.Range * s.path.TileSize()

	switch tower.Special {
	case types.SpecialDamageAura, types.SpecialRangeAura:
		for _, other := range ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.entityManager) {
			if other == id {
				continue
			}
			otherPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, other)
			if utils.Distance(pos.X, pos.Y, otherPos.X, otherPos.Y) > radius {
				continue
			}
			otherTower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, other)
			if tower.Special == types.SpecialDamageAura {
				otherTower.DamageMultiplier = math.Max(otherTower.DamageMultiplier, tower.AuraStrength)
			} else {
				otherTower.RangeMultiplier = math.Max(otherTower.RangeMultiplier, tower.AuraStrength)
			}
		}
		if tower.Special == types.SpecialRangeAura {
			s.forEachEnemyInRange(pos, radius, func(enemyID ecs.EntityID, enemy *components.EnemyComponent) {
				enemy.IsDetected = true
			})
		}
	case types.SpecialSlowAura:
		s.forEachEnemyInRange(pos, radius, func(enemyID ecs.EntityID, enemy *components.EnemyComponent) {
			s.combat.ApplyStatusEffect(enemyID, types.StatusSlow, tower.StatusDuration, tower.StatusPotency)
		})
	}
}

func (s *TowerSystem) forEachEnemyInRange(pos *components.PositionComponent, radius float64, fn func(ecs.EntityID, *components.EnemyComponent)) {
	for _, enemyID := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		enemy, ok := s.combat.activeEnemy(enemyID)
		if !ok {
			continue
		}
		enemyPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, enemyID)
		if utils.Distance(pos.X, pos.Y, enemyPos.X, enemyPos.Y) <= radius {
			fn(enemyID, enemy)
		}
	}
}

func (s *TowerSystem) updateAttacker(id ecs.EntityID, tower *components.TowerComponent, dt float64) {
	tower.LastShotElapsed += dt
	tower.ChainCooldown = math.Max(0, tower.ChainCooldown-dt)

	tower.Target = s.FindTarget(id)
	if tower.Target == ecs.InvalidEntity {
		return
	}

	if tower.Special == types.SpecialBeam {
		s.combat.TakeDamage(tower.Target, EffectiveDamage(tower)*s.rules.Towers.Shots.BeamFraction, types.DamageNormal)
	}

	rate := EffectiveFireRate(tower)
	if rate <= 0 || tower.LastShotElapsed < 1/rate {
		return
	}
	s.shoot(id, tower)
	tower.LastShotElapsed = 0
	tower.ShotsFired++
}

// FindTarget 返回塔本步应攻击的敌人
//
// 当前目标仍存活、可被选中且在有效射程内时保持不变；否则选择有效射程内
// 最近的可选中敌人，距离相同时取先遍历到的。没有目标时返回 InvalidEntity。
func (s *TowerSystem) FindTarget(towerID ecs.EntityID) ecs.EntityID {
	tower, ok := ecs.GetComponent[*components.TowerComponent](s.entityManager, towerID)
	if !ok {
		return ecs.InvalidEntity
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, towerID)
	if !ok {
		return ecs.InvalidEntity
	}
	rangePx := EffectiveRange(tower, s.path.TileSize())

	if s.combat.IsTargetable(tower.Target) {
		if targetPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, tower.Target); ok &&
			utils.Distance(pos.X, pos.Y, targetPos.X, targetPos.Y) <= rangePx {
			return tower.Target
		}
	}

	best := ecs.InvalidEntity
	bestDist := 0.0
	for _, enemyID := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		if !s.combat.IsTargetable(enemyID) {
			continue
		}
		enemyPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, enemyID)
		dist := utils.Distance(pos.X, pos.Y, enemyPos.X, enemyPos.Y)
		if dist > rangePx {
			continue
		}
		if best == ecs.InvalidEntity || dist < bestDist {
			best = enemyID
			bestDist = dist
		}
	}
	return best
}

// shoot 按塔的特殊能力发射
func (s *TowerSystem) shoot(id ecs.EntityID, tower *components.TowerComponent) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	shots := s.rules.Towers.Shots
	tileSize := s.path.TileSize()

	spec := entities.ProjectileSpec{
		X:       pos.X,
		Y:       pos.Y,
		Source:  id,
		Target:  tower.Target,
		Damage:  EffectiveDamage(tower),
		Speed:   tower.ProjectileSpeed,
		Radius:  s.rules.Game.ProjectileRadius,
		Special: tower.Special,
	}

	switch tower.Special {
	case types.SpecialPierce:
		spec.Speed *= shots.PierceSpeedMultiplier
		spec.PierceCount = shots.PierceCount
	case types.SpecialCritical:
		if s.rng != nil && s.rng.Float64() < shots.CriticalChance {
			spec.Damage *= shots.CriticalMultiplier
			spec.Critical = true
		}
	case types.SpecialChain:
		if tower.ChainCooldown > 0 {
			// 冷却中改为普通射击
			spec.Special = types.SpecialNone
			break
		}
		spec.ChainCount = shots.ChainCount
		spec.ChainRange = shots.ChainRange * tileSize
		spec.ChainFalloff = shots.ChainFalloff
		tower.ChainCooldown = shots.ChainCooldown
	case types.SpecialBeam:
		if !s.combat.IsActive(tower.Target) {
			return
		}
		spec.Damage = 0
		spec.Speed = shots.BeamSpeed
		spec.Lifetime = shots.BeamLifetime
	case types.SpecialSplash:
		spec.SplashRadius = tower.SplashRadius
	default:
		if kind := tower.Special.StatusKind(); kind != types.StatusNone {
			spec.StatusKind = kind
			spec.StatusDuration = tower.StatusDuration
			spec.StatusPotency = tower.StatusPotency
		}
	}

	projectile, err := entities.NewProjectileEntity(s.entityManager, s.path, spec)
	if err != nil {
		log.Printf("[TowerSystem] Tower %d failed to fire: %v", id, err)
		return
	}
	if s.verbose {
		log.Printf("[TowerSystem] %s (entity %d) fired projectile %d at %d (damage=%.1f, special=%q)",
			tower.Name, id, projectile, tower.Target, spec.Damage, spec.Special)
	}
}

// CanUpgrade 只有未升级过的 1 级塔可以升级
func CanUpgrade(tower *components.TowerComponent) bool {
	return tower.Level == 1 && !tower.Upgraded
}

// ApplyUpgrade 把升级定义应用到塔上（一次性，不可逆）
//
// 只覆盖升级定义中非零的属性；特殊能力和溅射半径同理。
// 返回 false 表示塔不能升级，此时不做任何修改。
func ApplyUpgrade(tower *components.TowerComponent, def *config.UpgradeStats, sellRatio float64) bool {
	if def == nil || !CanUpgrade(tower) {
		return false
	}
	if def.Damage > 0 {
		tower.Damage = def.Damage
	}
	if def.Range > 0 {
		tower.Range = def.Range
	}
	if def.FireRate > 0 {
		tower.FireRate = def.FireRate
	}
	if def.Special != types.SpecialNone {
		tower.Special = def.Special
	}
	if def.SplashRadius > 0 {
		tower.SplashRadius = def.SplashRadius
	}
	if def.Name != "" {
		tower.Name = def.Name
	}

	tower.Level = 2
	tower.Upgraded = true
	tower.UpgradeType = def.ID
	tower.UpgradeCost = def.Cost
	tower.SellValue = entities.SellValue(tower.Cost, def.Cost, sellRatio)
	return true
}
