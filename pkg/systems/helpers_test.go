package systems

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/types"
)

// fixedRandom 按顺序循环返回预设值
type fixedRandom struct {
	values []float64
	next   int
}

func (r *fixedRandom) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

// testWorld 系统测试共用的环境
type testWorld struct {
	em     *ecs.EntityManager
	rules  *config.Rules
	path   *grid.GridPath
	gs     *game.GameState
	events *game.EventBus
	combat *Combat
	queue  *SpawnQueue
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	rules := config.MustDefaultRules()
	path, err := grid.FromConfig(rules.Map, rules.Game.TileSize)
	if err != nil {
		t.Fatalf("Failed to build path: %v", err)
	}
	em := ecs.NewEntityManager()
	gs := game.NewGameState(rules.Game.StartingLives, rules.Game.StartingMoney, rules.Game.WaveDelay)
	events := game.NewEventBus()
	return &testWorld{
		em:     em,
		rules:  rules,
		path:   path,
		gs:     gs,
		events: events,
		combat: NewCombat(em, rules.Enemies, gs, events),
		queue:  NewSpawnQueue(),
	}
}

// addEnemy 在指定位置创建一个没有能力的普通敌人
func (w *testWorld) addEnemy(x, y, health, shields, armor float64) ecs.EntityID {
	id := w.em.CreateEntity()
	w.em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	w.em.AddComponent(id, &components.EnemyComponent{
		Kind:                 types.EnemyBasic,
		Wave:                 1,
		Reward:               10,
		Armor:                armor,
		BaseSpeed:            1,
		Speed:                1,
		Size:                 10,
		Active:               true,
		PhaseSpeedMultiplier: 1,
	})
	w.em.AddComponent(id, &components.HealthComponent{
		Health:     health,
		MaxHealth:  health,
		Shields:    shields,
		MaxShields: shields,
	})
	w.em.AddComponent(id, &components.StatusEffectsComponent{})
	w.em.AddComponent(id, &components.AbilitiesComponent{})
	return id
}

// addTower 在指定格子创建塔
func (w *testWorld) addTower(t *testing.T, towerType types.TowerType, col, row int) ecs.EntityID {
	t.Helper()
	id, err := entities.NewTowerEntity(w.em, w.rules, w.path, towerType, col, row)
	if err != nil {
		t.Fatalf("Failed to create tower: %v", err)
	}
	return id
}

func (w *testWorld) enemy(id ecs.EntityID) *components.EnemyComponent {
	c, _ := ecs.GetComponent[*components.EnemyComponent](w.em, id)
	return c
}

func (w *testWorld) health(id ecs.EntityID) *components.HealthComponent {
	c, _ := ecs.GetComponent[*components.HealthComponent](w.em, id)
	return c
}

func (w *testWorld) status(id ecs.EntityID) *components.StatusEffectsComponent {
	c, _ := ecs.GetComponent[*components.StatusEffectsComponent](w.em, id)
	return c
}

func (w *testWorld) abilities(id ecs.EntityID) *components.AbilitiesComponent {
	c, _ := ecs.GetComponent[*components.AbilitiesComponent](w.em, id)
	return c
}

func (w *testWorld) tower(id ecs.EntityID) *components.TowerComponent {
	c, _ := ecs.GetComponent[*components.TowerComponent](w.em, id)
	return c
}

func (w *testWorld) position(id ecs.EntityID) *components.PositionComponent {
	c, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	return c
}

func (w *testWorld) projectiles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em)
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
