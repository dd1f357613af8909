package entities

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// ProjectileSpec 创建投射物所需的参数
type ProjectileSpec struct {
	X, Y   float64
	Source ecs.EntityID
	Target ecs.EntityID

	Damage  float64
	Speed   float64
	Radius  float64
	Special types.Special

	SplashRadius float64

	StatusKind     types.StatusKind
	StatusDuration float64
	StatusPotency  float64

	PierceCount int

	ChainCount   int
	ChainRange   float64
	ChainFalloff float64

	Critical bool

	// Lifetime > 0 时创建不参与碰撞的显示用投射物（光束）
	Lifetime float64
}

// NewProjectileEntity 创建投射物并瞄准目标的预测位置
//
// 参数:
//   - em: 实体管理器
//   - path: 地图路径，用于预测敌人沿路径的移动
//   - spec: 投射物参数
//
// 返回:
//   - ecs.EntityID: 创建的投射物实体ID
//   - error: 参数无效时返回错误
func NewProjectileEntity(em *ecs.EntityManager, path *grid.GridPath, spec ProjectileSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if path == nil {
		return 0, fmt.Errorf("path cannot be nil")
	}
	if spec.Speed <= 0 {
		return 0, fmt.Errorf("projectile speed must be positive, got %v", spec.Speed)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: spec.X, Y: spec.Y})

	vx, vy := AimVelocity(em, path, spec.X, spec.Y, spec.Target, spec.Speed)
	em.AddComponent(entityID, &components.VelocityComponent{VX: vx, VY: vy})

	em.AddComponent(entityID, &components.ProjectileComponent{
		Source:          spec.Source,
		Target:          spec.Target,
		Damage:          spec.Damage,
		Speed:           spec.Speed,
		Radius:          spec.Radius,
		Special:         spec.Special,
		SplashRadius:    spec.SplashRadius,
		StatusKind:      spec.StatusKind,
		StatusDuration:  spec.StatusDuration,
		StatusPotency:   spec.StatusPotency,
		PierceRemaining: spec.PierceCount,
		ChainCount:      spec.ChainCount,
		ChainRange:      spec.ChainRange,
		ChainFalloff:    spec.ChainFalloff,
		Critical:        spec.Critical,
		Cosmetic:        spec.Lifetime > 0,
		Active:          true,
	})

	if spec.Lifetime > 0 {
		em.AddComponent(entityID, &components.LifetimeComponent{MaxLifetime: spec.Lifetime})
	}

	return entityID, nil
}

// AimVelocity 计算从 (x, y) 射向目标预测位置的速度
//
// 先按当前距离估算飞行时间，再让目标沿剩余路径前进这段时间得到预测点。
// 目标无效或预测点与起点重合时返回零速度。
func AimVelocity(em *ecs.EntityManager, path *grid.GridPath, x, y float64, target ecs.EntityID, speed float64) (vx, vy float64) {
	if !em.IsAlive(target) || speed <= 0 {
		return 0, 0
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, target)
	if !ok {
		return 0, 0
	}

	timeToReach := utils.Distance(x, y, pos.X, pos.Y) / speed
	px, py, ok := PredictEnemyPosition(em, path, target, timeToReach)
	if !ok {
		px, py = pos.X, pos.Y
	}

	dx, dy, dist := utils.Direction(x, y, px, py)
	if dist == 0 {
		return 0, 0
	}
	return dx * speed, dy * speed
}

// PredictEnemyPosition 预测敌人 timeAhead 秒后沿路径所在的位置
// 按敌人当前有效速度计算，不考虑之后状态效果的变化
func PredictEnemyPosition(em *ecs.EntityManager, path *grid.GridPath, target ecs.EntityID, timeAhead float64) (x, y float64, ok bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, target)
	if !ok {
		return 0, 0, false
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, target)
	if !ok {
		return pos.X, pos.Y, true
	}

	distance := enemy.Speed * path.TileSize() * timeAhead
	x, y = path.PredictPosition(pos.X, pos.Y, enemy.PathIndex, distance)
	return x, y, true
}
