package simulation

import (
	"log"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/types"
)

// 玩家命令。失败时返回 false 且不修改任何状态。

// SelectTowerType 设置下一次建造的塔类型，不做校验
func (l *Loop) SelectTowerType(towerType types.TowerType) {
	l.gameState.SelectedTowerType = towerType
}

// SelectedTowerType 当前选择的塔类型
func (l *Loop) SelectedTowerType() types.TowerType {
	return l.gameState.SelectedTowerType
}

// TowerAt 返回占据指定格子的塔
func (l *Loop) TowerAt(col, row int) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.TowerComponent](l.entityManager) {
		if l.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](l.entityManager, id)
		if tower.Col == col && tower.Row == row {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

// CanBuildAt 格子可建造且没有被占据
func (l *Loop) CanBuildAt(col, row int) bool {
	if !l.path.IsBuildable(col, row) {
		return false
	}
	_, occupied := l.TowerAt(col, row)
	return !occupied
}

// PlaceTower 在指定格子建造当前选择的塔
// 格子不可建造、已被占据、塔类型未知或金钱不足时返回 false
func (l *Loop) PlaceTower(col, row int) bool {
	gs := l.gameState
	if gs.GameOver || !l.CanBuildAt(col, row) {
		return false
	}
	stats, ok := l.rules.Towers.Stats(gs.SelectedTowerType)
	if !ok {
		return false
	}
	if !gs.SpendMoney(stats.Cost) {
		return false
	}

	id, err := entities.NewTowerEntity(l.entityManager, l.rules, l.path, gs.SelectedTowerType, col, row)
	if err != nil {
		// 类型已校验过，这里失败说明规则和工厂不一致
		gs.AddMoney(stats.Cost)
		log.Printf("[Loop] Failed to create tower %s: %v", gs.SelectedTowerType, err)
		return false
	}
	gs.TowersBuilt++

	log.Printf("[Loop] Built %s at (%d, %d) for %d, money=%d", gs.SelectedTowerType, col, row, stats.Cost, gs.Money)
	l.events.Publish(game.Event{
		Type:      game.EventTowerBuilt,
		RunID:     gs.RunID,
		Wave:      gs.Wave,
		Entity:    id,
		TowerType: gs.SelectedTowerType,
		Amount:    stats.Cost,
	})
	l.publishState()
	return true
}

// AvailableUpgrades 返回塔当前可选的升级路线，不可升级时为空
func (l *Loop) AvailableUpgrades(towerID ecs.EntityID) []config.UpgradeStats {
	tower, ok := l.tower(towerID)
	if !ok || !systems.CanUpgrade(tower) {
		return nil
	}
	stats, ok := l.rules.Towers.Stats(tower.Type)
	if !ok {
		return nil
	}
	return stats.Upgrades
}

// UpgradeTower 按指定路线升级塔
// 塔不存在、已升级、路线不属于该塔或金钱不足时返回 false
func (l *Loop) UpgradeTower(towerID ecs.EntityID, upgrade types.UpgradeType) bool {
	gs := l.gameState
	tower, ok := l.tower(towerID)
	if !ok || !systems.CanUpgrade(tower) {
		return false
	}
	def, ok := l.rules.Towers.Upgrade(tower.Type, upgrade)
	if !ok {
		return false
	}
	if !gs.SpendMoney(def.Cost) {
		return false
	}
	systems.ApplyUpgrade(tower, def, l.rules.Game.SellRatio)

	log.Printf("[Loop] Upgraded %s %d to %s for %d", tower.Type, towerID, upgrade, def.Cost)
	l.events.Publish(game.Event{
		Type:        game.EventTowerUpgraded,
		RunID:       gs.RunID,
		Wave:        gs.Wave,
		Entity:      towerID,
		TowerType:   tower.Type,
		UpgradeType: upgrade,
		Amount:      def.Cost,
	})
	l.publishState()
	return true
}

// SellTower 出售塔并返还 SellValue
func (l *Loop) SellTower(towerID ecs.EntityID) bool {
	gs := l.gameState
	tower, ok := l.tower(towerID)
	if !ok {
		return false
	}
	gs.AddMoney(tower.SellValue)
	l.entityManager.DestroyEntity(towerID)
	l.entityManager.RemoveMarkedEntities()

	log.Printf("[Loop] Sold %s at (%d, %d) for %d, money=%d", tower.Type, tower.Col, tower.Row, tower.SellValue, gs.Money)
	l.events.Publish(game.Event{
		Type:      game.EventTowerSold,
		RunID:     gs.RunID,
		Wave:      gs.Wave,
		Entity:    towerID,
		TowerType: tower.Type,
		Amount:    tower.SellValue,
	})
	l.publishState()
	return true
}

// StartNextWave 跳过剩余的波次间隔，立即开始下一波
func (l *Loop) StartNextWave() bool {
	gs := l.gameState
	if gs.GameOver || gs.WaveActive {
		return false
	}
	l.waveSystem.StartWave()
	return true
}

func (l *Loop) tower(id ecs.EntityID) (*components.TowerComponent, bool) {
	if l.gameState.GameOver || l.entityManager.IsMarkedForDestruction(id) {
		return nil, false
	}
	return ecs.GetComponent[*components.TowerComponent](l.entityManager, id)
}
