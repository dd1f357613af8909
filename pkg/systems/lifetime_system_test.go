package systems

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(5.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 5.0 {
		t.Errorf("Expected CurrentLifetime=5.0, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 0.1})
	em.AddComponent(id, &components.ProjectileComponent{Active: true, Cosmetic: true})

	system.Update(0.05)
	if em.IsMarkedForDestruction(id) {
		t.Fatal("Entity should not be marked before MaxLifetime")
	}

	system.Update(0.06)

	proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if proj.Active {
		t.Error("Expired projectile should be inactive")
	}

	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("Expired entity should be removed")
	}
}
