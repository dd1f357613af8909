package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// LifetimeSystem 回收存在时间超过上限的实体
// 目前只有光束塔的显示用投射物带有 LifetimeComponent
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进所有生命周期计时，过期实体标记删除
func (s *LifetimeSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}
		if !lifetime.IsExpired {
			continue
		}

		// 投射物同时置为失效，避免在删除前被当作飞行中的投射物
		if proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id); ok {
			proj.Active = false
		}
		s.entityManager.DestroyEntity(id)
	}
}
