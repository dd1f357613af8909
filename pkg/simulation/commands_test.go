package simulation

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
)

func TestPlaceTower(t *testing.T) {
	tests := []struct {
		name      string
		towerType types.TowerType
		col, row  int
		expected  bool
		money     int
	}{
		{"buildable cell", types.TowerBasic, 3, 5, true, 100},
		{"path cell", types.TowerBasic, 0, 7, false, 150},
		{"out of bounds", types.TowerBasic, 30, 5, false, 150},
		{"laser tower", types.TowerLaser, 3, 5, true, 30},
		{"unknown type", types.TowerType("ultimate"), 3, 5, false, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoop(t)
			l.SelectTowerType(tt.towerType)
			if got := l.PlaceTower(tt.col, tt.row); got != tt.expected {
				t.Errorf("Expected PlaceTower %v, got %v", tt.expected, got)
			}
			if l.State().Money != tt.money {
				t.Errorf("Expected money %d, got %d", tt.money, l.State().Money)
			}
		})
	}
}

func TestPlaceTower_InsufficientMoney(t *testing.T) {
	l := newTestLoop(t)
	l.SelectTowerType(types.TowerSniper)
	l.PlaceTower(3, 5)

	// 剩余 50，不够再建一座狙击塔
	if l.PlaceTower(4, 5) {
		t.Error("Expected placement to fail without enough money")
	}
	if l.State().Money != 50 || len(l.Towers()) != 1 {
		t.Errorf("Expected no state change, got money %d towers %d", l.State().Money, len(l.Towers()))
	}
}

func TestPlaceTower_OccupiedCell(t *testing.T) {
	l := newTestLoop(t)
	events := recordEvents(l, game.EventTowerBuilt)

	if !l.PlaceTower(3, 5) {
		t.Fatal("Expected first placement to succeed")
	}
	if l.CanBuildAt(3, 5) {
		t.Error("Expected occupied cell to be unbuildable")
	}
	if l.PlaceTower(3, 5) {
		t.Error("Expected placement on an occupied cell to fail")
	}

	if l.State().TowersBuilt != 1 {
		t.Errorf("Expected 1 tower built, got %d", l.State().TowersBuilt)
	}
	if len(*events) != 1 || (*events)[0].TowerType != types.TowerBasic || (*events)[0].Amount != 50 {
		t.Errorf("Expected one TowerBuilt event, got %+v", *events)
	}
	if id, ok := l.TowerAt(3, 5); !ok || (*events)[0].Entity != id {
		t.Errorf("Expected TowerAt to find the new tower, got %d %v", id, ok)
	}
}

func TestUpgradeTower(t *testing.T) {
	l := newTestLoop(t)
	events := recordEvents(l, game.EventTowerUpgraded)
	l.PlaceTower(3, 5)
	id, _ := l.TowerAt(3, 5)

	if upgrades := l.AvailableUpgrades(id); len(upgrades) != 2 {
		t.Fatalf("Expected 2 upgrade paths for the basic tower, got %d", len(upgrades))
	}
	if l.UpgradeTower(id, types.UpgradeRailgun) {
		t.Error("Expected an upgrade from another tower's tree to be rejected")
	}
	if !l.UpgradeTower(id, types.UpgradeGuard) {
		t.Fatal("Expected guard upgrade to succeed")
	}

	tower := l.Towers()[0]
	if tower.Level != 2 || tower.UpgradeType != types.UpgradeGuard || tower.Damage != 80 {
		t.Errorf("Expected level 2 guard tower with damage 80, got %+v", tower)
	}
	if tower.SellValue != 87 {
		t.Errorf("Expected sell value 87, got %d", tower.SellValue)
	}
	if l.State().Money != 25 {
		t.Errorf("Expected money 25, got %d", l.State().Money)
	}
	if l.UpgradeTower(id, types.UpgradeRapid) {
		t.Error("Expected a second upgrade to be rejected")
	}
	if len(l.AvailableUpgrades(id)) != 0 {
		t.Error("Expected no upgrades after upgrading")
	}
	if len(*events) != 1 || (*events)[0].UpgradeType != types.UpgradeGuard {
		t.Errorf("Expected one TowerUpgraded event, got %+v", *events)
	}
}

func TestUpgradeTower_InsufficientMoney(t *testing.T) {
	l := newTestLoop(t)
	l.SelectTowerType(types.TowerSniper)
	l.PlaceTower(3, 5)
	id, _ := l.TowerAt(3, 5)

	if l.UpgradeTower(id, types.UpgradeRailgun) {
		t.Error("Expected upgrade to fail with 50 money")
	}
	if tower := l.Towers()[0]; tower.Level != 1 || l.State().Money != 50 {
		t.Errorf("Expected no state change, got level %d money %d", tower.Level, l.State().Money)
	}
}

func TestSellTower(t *testing.T) {
	l := newTestLoop(t)
	events := recordEvents(l, game.EventTowerSold)
	l.PlaceTower(3, 5)
	id, _ := l.TowerAt(3, 5)

	if !l.SellTower(id) {
		t.Fatal("Expected sell to succeed")
	}
	if l.State().Money != 135 {
		t.Errorf("Expected money 135 after refund, got %d", l.State().Money)
	}
	if _, ok := l.TowerAt(3, 5); ok {
		t.Error("Expected cell to be free after selling")
	}
	if !l.CanBuildAt(3, 5) {
		t.Error("Expected cell to be buildable again")
	}
	if l.SellTower(id) {
		t.Error("Expected selling twice to fail")
	}
	if len(*events) != 1 || (*events)[0].Amount != 35 {
		t.Errorf("Expected one TowerSold event with refund 35, got %+v", *events)
	}
}

func TestStartNextWave(t *testing.T) {
	l := newTestLoop(t)
	events := recordEvents(l, game.EventWaveStarted)

	if !l.StartNextWave() {
		t.Fatal("Expected wave to start early")
	}
	if l.StartNextWave() {
		t.Error("Expected no early start while a wave is active")
	}
	state := l.State()
	if state.Wave != 1 || !state.WaveActive || state.EnemiesPerWave != 5 {
		t.Errorf("Expected active wave 1 with quota 5, got %+v", state)
	}
	if len(*events) != 1 {
		t.Errorf("Expected one WaveStarted event, got %d", len(*events))
	}
}
