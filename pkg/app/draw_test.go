package app

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/types"
)

func TestHealthColor(t *testing.T) {
	if got := healthColor(1); got != colorHealth {
		t.Errorf("Expected full health color %v, got %v", colorHealth, got)
	}
	if got := healthColor(0); got != colorHurt {
		t.Errorf("Expected empty health color %v, got %v", colorHurt, got)
	}
	half := healthColor(0.5)
	if half.R <= colorHealth.R || half.G >= colorHealth.G {
		t.Errorf("Expected half health color between hurt and healthy, got %v", half)
	}
}

func TestColorTables(t *testing.T) {
	rules, err := config.DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules failed: %v", err)
	}
	for _, towerType := range rules.Towers.Order {
		if _, ok := towerColors[towerType]; !ok {
			t.Errorf("Expected a color for tower %s", towerType)
		}
	}
	for _, kind := range types.AllEnemyKinds() {
		if _, ok := enemyColors[kind]; !ok {
			t.Errorf("Expected a color for enemy %s", kind)
		}
	}
	if len(towerKeys) < len(rules.Towers.Order) {
		t.Errorf("Expected a key for every tower, got %d keys for %d towers", len(towerKeys), len(rules.Towers.Order))
	}
}
