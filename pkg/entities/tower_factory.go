package entities

import (
	"fmt"
	"math"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/types"
)

// NewTowerEntity 在指定格子创建塔
// 不检查格子是否可建造、资金是否足够，这些由调用方负责
//
// 参数:
//   - em: 实体管理器
//   - rules: 规则（塔属性和出售比例）
//   - path: 地图，用于计算格子中心
//   - towerType: 塔类型
//   - col, row: 网格坐标
func NewTowerEntity(em *ecs.EntityManager, rules *config.Rules, path *grid.GridPath, towerType types.TowerType, col, row int) (ecs.EntityID, error) {
	if em == nil || rules == nil || path == nil {
		return 0, fmt.Errorf("entity manager, rules and path are required")
	}
	stats, ok := rules.Towers.Stats(towerType)
	if !ok {
		return 0, fmt.Errorf("unknown tower type %q", towerType)
	}

	entityID := em.CreateEntity()

	x, y := path.CellCenter(col, row)
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})

	em.AddComponent(entityID, &components.TowerComponent{
		Type:               towerType,
		Name:               stats.Name,
		Col:                col,
		Row:                row,
		Range:              stats.Range,
		Damage:             stats.Damage,
		FireRate:           stats.FireRate,
		ProjectileSpeed:    stats.ProjectileSpeed,
		Special:            stats.Special,
		SplashRadius:       stats.SplashRadius,
		StatusDuration:     stats.StatusDuration,
		StatusPotency:      stats.StatusPotency,
		AuraStrength:       stats.AuraStrength,
		Cost:               stats.Cost,
		SellValue:          SellValue(stats.Cost, 0, rules.Game.SellRatio),
		Level:              1,
		DamageMultiplier:   1,
		RangeMultiplier:    1,
		FireRateMultiplier: 1,
	})

	return entityID, nil
}

// SellValue 出售返还 = floor((建造费用 + 升级费用) * ratio)
func SellValue(cost, upgradeCost int, ratio float64) int {
	return int(math.Floor(float64(cost+upgradeCost)*ratio + 1e-9))
}
