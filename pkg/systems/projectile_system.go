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

// SplashFactor 溅射伤害相对于主伤害的比例
const SplashFactor = 0.6

// ProjectileSystem 投射物飞行和命中结算
//
// 命中顺序：主目标先施加状态再受伤；穿透弹记录命中并在预算内重新索敌；
// 其他投射物依次结算溅射和连锁后失效。
// 失效的投射物在本系统中标记删除，实际移除由 RemoveMarkedEntities 完成。
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	combat        *Combat
	game          *config.GameConfig
	path          *grid.GridPath

	verbose bool
}

// NewProjectileSystem 创建投射物系统
func NewProjectileSystem(em *ecs.EntityManager, combat *Combat, gameConfig *config.GameConfig, path *grid.GridPath) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		combat:        combat,
		game:          gameConfig,
		path:          path,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *ProjectileSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// SplashDamage 距离爆心 distance 处的溅射伤害
// floor(damage × 0.6 × (1 − distance/radius))，半径外（含边缘）为 0
func SplashDamage(damage, distance, radius float64) float64 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	return math.Max(0, math.Floor(damage*SplashFactor*(1-distance/radius)))
}

// Update 按创建顺序更新所有投射物
func (s *ProjectileSystem) Update(dt float64) {
	projectiles := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, id := range projectiles {
		if s.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		if proj.Active {
			s.updateProjectile(id, proj, pos, vel, dt)
		}
		if !proj.Active {
			s.entityManager.DestroyEntity(id)
		}
	}
}

func (s *ProjectileSystem) updateProjectile(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, vel *components.VelocityComponent, dt float64) {
	pos.X += vel.VX * dt
	pos.Y += vel.VY * dt

	if !proj.Cosmetic {
		if s.combat.IsActive(proj.Target) {
			target, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, proj.Target)
			targetPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, proj.Target)
			hitRadius := target.Size + proj.Radius + s.game.CollisionSlack
			if utils.Distance(pos.X, pos.Y, targetPos.X, targetPos.Y) < hitRadius {
				s.hit(id, proj, pos, vel)
				return
			}
		} else if proj.Special == types.SpecialPierce {
			// 目标丢失，穿透弹尝试重新索敌
			s.retarget(proj, pos, vel)
			if !proj.Active {
				return
			}
		}
	}

	if s.outOfBounds(pos) {
		proj.Active = false
		if s.verbose {
			log.Printf("[ProjectileSystem] Projectile %d left the map", id)
		}
	}
}

func (s *ProjectileSystem) outOfBounds(pos *components.PositionComponent) bool {
	width, height := s.path.WorldBounds()
	margin := s.game.OutOfBoundsMargin
	return pos.X < -margin || pos.X > width+margin || pos.Y < -margin || pos.Y > height+margin
}

// hit 结算对当前目标的命中
func (s *ProjectileSystem) hit(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, vel *components.VelocityComponent) {
	primary := proj.Target
	s.strike(primary, proj.Damage, proj)

	if proj.Special == types.SpecialPierce {
		proj.Pierced = append(proj.Pierced, primary)
		proj.PierceRemaining--
		if proj.PierceRemaining <= 0 {
			proj.Active = false
			return
		}
		s.retarget(proj, pos, vel)
		return
	}

	if proj.SplashRadius > 0 {
		s.splash(primary, proj, pos)
	}
	if proj.ChainCount > 0 {
		s.chain(primary, proj)
	}
	proj.Active = false

	if s.verbose {
		log.Printf("[ProjectileSystem] Projectile %d hit %d (damage=%.1f)", id, primary, proj.Damage)
	}
}

// strike 先施加状态再造成伤害
func (s *ProjectileSystem) strike(enemyID ecs.EntityID, damage float64, proj *components.ProjectileComponent) {
	if proj.StatusKind != types.StatusNone {
		s.combat.ApplyStatusEffect(enemyID, proj.StatusKind, proj.StatusDuration, proj.StatusPotency)
	}
	s.combat.TakeDamage(enemyID, damage, types.DamageNormal)
}

// retarget 穿透弹寻找搜索半径内最近的、尚未穿透过的敌人，找不到则失效
func (s *ProjectileSystem) retarget(proj *components.ProjectileComponent, pos *components.PositionComponent, vel *components.VelocityComponent) {
	radius := s.game.PierceSearchRadius * s.path.TileSize()
	next := s.nearestEnemy(pos.X, pos.Y, radius, proj.HasPierced)
	if next == ecs.InvalidEntity {
		proj.Active = false
		return
	}
	proj.Target = next
	vel.VX, vel.VY = entities.AimVelocity(s.entityManager, s.path, pos.X, pos.Y, next, proj.Speed)
}

// splash 对爆心范围内除主目标外的敌人附加状态并造成衰减伤害
func (s *ProjectileSystem) splash(primary ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent) {
	radius := proj.SplashRadius * s.path.TileSize()
	for _, enemyID := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		if enemyID == primary || !s.combat.IsActive(enemyID) {
			continue
		}
		enemyPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, enemyID)
		distance := utils.Distance(pos.X, pos.Y, enemyPos.X, enemyPos.Y)
		if distance > radius {
			continue
		}
		// 范围内都会附加状态，伤害取整为 0 时不结算伤害
		if proj.StatusKind != types.StatusNone {
			s.combat.ApplyStatusEffect(enemyID, proj.StatusKind, proj.StatusDuration, proj.StatusPotency)
		}
		if damage := SplashDamage(proj.Damage, distance, radius); damage > 0 {
			s.combat.TakeDamage(enemyID, damage, types.DamageNormal)
		}
	}
}

// chain 从主目标开始逐跳寻找最近的未被连锁过的敌人，每跳伤害乘以衰减系数
func (s *ProjectileSystem) chain(primary ecs.EntityID, proj *components.ProjectileComponent) {
	chained := []ecs.EntityID{primary}
	excluded := func(id ecs.EntityID) bool {
		for _, c := range chained {
			if c == id {
				return true
			}
		}
		return false
	}

	from := primary
	damage := proj.Damage
	for hop := 0; hop < proj.ChainCount; hop++ {
		fromPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, from)
		if !ok {
			return
		}
		next := s.nearestEnemy(fromPos.X, fromPos.Y, proj.ChainRange, excluded)
		if next == ecs.InvalidEntity {
			return
		}
		damage *= proj.ChainFalloff
		s.strike(next, damage, proj)
		chained = append(chained, next)
		from = next
	}
}

// nearestEnemy 半径内最近的可选中敌人，距离相同时取先遍历到的
func (s *ProjectileSystem) nearestEnemy(x, y, radius float64, exclude func(ecs.EntityID) bool) ecs.EntityID {
	best := ecs.InvalidEntity
	bestDist := 0.0
	for _, enemyID := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		if exclude(enemyID) || !s.combat.IsTargetable(enemyID) {
			continue
		}
		enemyPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, enemyID)
		dist := utils.Distance(x, y, enemyPos.X, enemyPos.Y)
		if dist > radius {
			continue
		}
		if best == ecs.InvalidEntity || dist < bestDist {
			best = enemyID
			bestDist = dist
		}
	}
	return best
}
