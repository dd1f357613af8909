package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonewx/towerdefense/pkg/types"
)

func TestDefaultRules(t *testing.T) {
	rules, err := DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules failed: %v", err)
	}

	if rules.Game.TileSize != 48 {
		t.Errorf("Expected tileSize 48, got %v", rules.Game.TileSize)
	}
	if rules.Game.StartingLives != 20 || rules.Game.StartingMoney != 150 {
		t.Errorf("Expected 20 lives / 150 money, got %d / %d", rules.Game.StartingLives, rules.Game.StartingMoney)
	}
	if step := rules.Game.FixedStep(); step < 0.0166 || step > 0.0167 {
		t.Errorf("Expected fixed step 1/60, got %v", step)
	}

	if rules.Map.Width != 25 || rules.Map.Height != 15 {
		t.Errorf("Expected 25x15 map, got %dx%d", rules.Map.Width, rules.Map.Height)
	}
	if len(rules.Map.Waypoints) != 40 {
		t.Errorf("Expected 40 waypoints, got %d", len(rules.Map.Waypoints))
	}

	if len(rules.Enemies.Enemies) != 14 {
		t.Errorf("Expected 14 enemy kinds, got %d", len(rules.Enemies.Enemies))
	}
	for _, kind := range types.AllEnemyKinds() {
		if _, ok := rules.Enemies.Stats(kind); !ok {
			t.Errorf("Expected stats for enemy kind %s", kind)
		}
	}
	if len(rules.Towers.Towers) != 11 {
		t.Errorf("Expected 11 tower types, got %d", len(rules.Towers.Towers))
	}
	if len(rules.Towers.Order) != len(rules.Towers.Towers) {
		t.Errorf("Expected every tower in build order, got %d of %d", len(rules.Towers.Order), len(rules.Towers.Towers))
	}
}

func TestDefaultRules_EnemyStats(t *testing.T) {
	rules := MustDefaultRules()

	tests := []struct {
		kind   types.EnemyKind
		wave   int
		health float64
		reward int
		speed  float64
	}{
		{types.EnemyBasic, 1, 80, 10, 1},
		{types.EnemyBasic, 5, 160, 10, 1},
		{types.EnemyCamo, 4, 140, 19, 2.5},
		{types.EnemySplitMini, 7, 65, 8, 3.5},
		{types.EnemyMinion, 9, 61, 8, 3.2},
		{types.EnemyShieldBoss, 10, 1800, 200, 1.2},
		{types.EnemyPhaseBoss, 20, 3300, 540, 1.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			stats, ok := rules.Enemies.Stats(tt.kind)
			if !ok {
				t.Fatalf("Enemy %s not found", tt.kind)
			}
			if got := stats.Health.At(tt.wave); got != tt.health {
				t.Errorf("Expected health %v, got %v", tt.health, got)
			}
			if got := stats.Reward.IntAt(tt.wave); got != tt.reward {
				t.Errorf("Expected reward %d, got %d", tt.reward, got)
			}
			if stats.Speed != tt.speed {
				t.Errorf("Expected speed %v, got %v", tt.speed, stats.Speed)
			}
		})
	}
}

func TestDefaultRules_BossAbilities(t *testing.T) {
	rules := MustDefaultRules()

	spawner, _ := rules.Enemies.Stats(types.EnemySpawnerBoss)
	ms := spawner.Abilities.MinionSpawn
	if ms == nil {
		t.Fatal("spawner-boss should have minionSpawn")
	}
	if got := ms.Interval.At(10); got < 2.999 || got > 3.001 {
		t.Errorf("Expected minion interval 3 at wave 10, got %v", got)
	}
	if got := ms.Interval.At(40); got != 2 {
		t.Errorf("Expected minion interval floored at 2, got %v", got)
	}
	if got := ms.MaxMinions.IntAt(10); got != 4 {
		t.Errorf("Expected 4 max minions at wave 10, got %d", got)
	}

	phase, _ := rules.Enemies.Stats(types.EnemyPhaseBoss)
	p1, ok := phase.Phase(1)
	if !ok || p1.SpeedMultiplier != 2 || p1.Abilities.Regeneration == nil {
		t.Errorf("Unexpected phase 1 config: %+v", p1)
	}

	armored, _ := rules.Enemies.Stats(types.EnemyArmoredBoss)
	if armored.SlowResistance != 0.6 {
		t.Errorf("Expected slowResistance 0.6, got %v", armored.SlowResistance)
	}
}

func TestLoadRules_Override(t *testing.T) {
	dir := t.TempDir()
	content := `
tileSize: 32
tickRate: 30
maxFrameDelta: 0
startingLives: 5
startingMoney: 1000
waveDelay: 1
projectileRadius: 4
collisionSlack: 2
outOfBoundsMargin: 100
pierceSearchRadius: 3
sellRatio: 0.5
`
	if err := os.WriteFile(filepath.Join(dir, GameFile), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write override: %v", err)
	}

	rules, err := LoadRules(dir)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if rules.Game.TileSize != 32 || rules.Game.StartingMoney != 1000 {
		t.Errorf("Override not applied: %+v", rules.Game)
	}
	// 其余文件回退到内置
	if rules.Map.Width != 25 {
		t.Errorf("Expected builtin map, got width %d", rules.Map.Width)
	}
}

func TestLoadRules_InvalidOverride(t *testing.T) {
	dir := t.TempDir()
	bad := `
bossWaveInterval: 10
bossQuota: 1
bossSpawnDelay: 3
bossRoster: [dragon]
bossWaveRoster: [camo]
regularQuota: 5
regularSpawnDelay: 1
bands:
  - minWave: 0
    fallback: basic
`
	if err := os.WriteFile(filepath.Join(dir, WavesFile), []byte(bad), 0644); err != nil {
		t.Fatalf("Failed to write override: %v", err)
	}

	_, err := LoadRules(dir)
	if err == nil {
		t.Fatal("Expected error for unknown boss kind")
	}
	if !strings.Contains(err.Error(), "unknown enemy dragon") {
		t.Errorf("Unexpected error: %v", err)
	}
}
