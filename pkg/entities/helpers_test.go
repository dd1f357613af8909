package entities

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/grid"
)

// newTestWorld 使用内置规则创建实体管理器和地图
func newTestWorld(t *testing.T) (*ecs.EntityManager, *config.Rules, *grid.GridPath) {
	t.Helper()
	rules := config.MustDefaultRules()
	path, err := grid.FromConfig(rules.Map, rules.Game.TileSize)
	if err != nil {
		t.Fatalf("Failed to build path: %v", err)
	}
	return ecs.NewEntityManager(), rules, path
}
