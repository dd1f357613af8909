package entities

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
)

func TestNewEnemyEntity_Basic(t *testing.T) {
	em, rules, path := newTestWorld(t)

	id, err := NewEnemyEntity(em, rules.Enemies, path, types.EnemyBasic, 3)
	if err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("Expected PositionComponent")
	}
	startX, startY := path.WaypointCenter(0)
	if pos.X != startX || pos.Y != startY {
		t.Errorf("Expected spawn at (%v, %v), got (%v, %v)", startX, startY, pos.X, pos.Y)
	}

	enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
	if !enemy.Active || enemy.PathIndex != 0 || enemy.Wave != 3 {
		t.Errorf("Unexpected enemy state: %+v", enemy)
	}
	if enemy.BaseSpeed != 1 || enemy.Speed != 1 {
		t.Errorf("Expected speed 1, got base=%v current=%v", enemy.BaseSpeed, enemy.Speed)
	}

	// 80 + 20 * (3 - 1)
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if health.Health != 120 || health.MaxHealth != 120 {
		t.Errorf("Expected health 120, got %v/%v", health.Health, health.MaxHealth)
	}
	if health.Shields != 0 || health.MaxShields != 0 {
		t.Errorf("Expected no shields, got %v/%v", health.Shields, health.MaxShields)
	}

	if !ecs.HasComponent[*components.StatusEffectsComponent](em, id) {
		t.Error("Expected StatusEffectsComponent")
	}
	if !ecs.HasComponent[*components.AbilitiesComponent](em, id) {
		t.Error("Expected AbilitiesComponent")
	}
}

func TestNewEnemyEntity_Bosses(t *testing.T) {
	em, rules, path := newTestWorld(t)

	tests := []struct {
		name        string
		kind        types.EnemyKind
		wave        int
		wantHealth  float64
		wantShields float64
		check       func(t *testing.T, enemy *components.EnemyComponent, abilities *components.AbilitiesComponent)
	}{
		{
			name:        "shield boss regenerates shields",
			kind:        types.EnemyShieldBoss,
			wave:        10,
			wantHealth:  1800,
			wantShields: 900,
			check: func(t *testing.T, enemy *components.EnemyComponent, abilities *components.AbilitiesComponent) {
				if !abilities.ShieldRegen.Active || abilities.ShieldRegen.Rate != 40 || abilities.ShieldRegen.Interval != 1.5 {
					t.Errorf("Unexpected shield regen: %+v", abilities.ShieldRegen)
				}
				if enemy.Armor != 0.3 || !enemy.IsBoss {
					t.Errorf("Unexpected boss flags: %+v", enemy)
				}
			},
		},
		{
			name:       "spawner boss minion cap grows every 5 waves",
			kind:       types.EnemySpawnerBoss,
			wave:       10,
			wantHealth: 1400,
			check: func(t *testing.T, enemy *components.EnemyComponent, abilities *components.AbilitiesComponent) {
				if !abilities.MinionSpawn.Active || abilities.MinionSpawn.MaxMinions != 4 {
					t.Errorf("Expected maxMinions 4, got %+v", abilities.MinionSpawn)
				}
				if abilities.MinionSpawn.Interval != 3 {
					t.Errorf("Expected interval 3, got %v", abilities.MinionSpawn.Interval)
				}
			},
		},
		{
			name:       "armored boss resists slows",
			kind:       types.EnemyArmoredBoss,
			wave:       20,
			wantHealth: 4200,
			check: func(t *testing.T, enemy *components.EnemyComponent, abilities *components.AbilitiesComponent) {
				if enemy.SlowResistance != 0.6 || enemy.Armor != 0.5 {
					t.Errorf("Unexpected armored boss stats: %+v", enemy)
				}
			},
		},
		{
			name:       "phase boss starts at its top phase",
			kind:       types.EnemyPhaseBoss,
			wave:       30,
			wantHealth: 4500,
			check: func(t *testing.T, enemy *components.EnemyComponent, abilities *components.AbilitiesComponent) {
				if enemy.Phase != 3 || enemy.MaxPhases != 3 || enemy.PhaseSpeedMultiplier != 1 {
					t.Errorf("Unexpected phase state: %+v", enemy)
				}
				if abilities.MinionSpawn.Active || abilities.Regeneration.Active {
					t.Error("Phase abilities should not be active at the top phase")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewEnemyEntity(em, rules.Enemies, path, tt.kind, tt.wave)
			if err != nil {
				t.Fatalf("NewEnemyEntity failed: %v", err)
			}
			health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
			if health.MaxHealth != tt.wantHealth {
				t.Errorf("Expected max health %v, got %v", tt.wantHealth, health.MaxHealth)
			}
			if health.MaxShields != tt.wantShields {
				t.Errorf("Expected max shields %v, got %v", tt.wantShields, health.MaxShields)
			}
			enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
			abilities, _ := ecs.GetComponent[*components.AbilitiesComponent](em, id)
			tt.check(t, enemy, abilities)
		})
	}
}

func TestNewEnemyEntityAt(t *testing.T) {
	em, rules, _ := newTestWorld(t)

	id, err := NewEnemyEntityAt(em, rules.Enemies, types.EnemySplitMini, 8, 100, 200, 12)
	if err != nil {
		t.Fatalf("NewEnemyEntityAt failed: %v", err)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
	if pos.X != 100 || pos.Y != 200 || enemy.PathIndex != 12 {
		t.Errorf("Expected (100, 200) at index 12, got (%v, %v) at %d", pos.X, pos.Y, enemy.PathIndex)
	}
}

func TestNewEnemyEntity_UnknownKind(t *testing.T) {
	em, rules, path := newTestWorld(t)

	if _, err := NewEnemyEntity(em, rules.Enemies, path, "dragon", 1); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected no entity to be created, got %d", em.EntityCount())
	}
}

func TestApplyAbilitySet_KeepsExisting(t *testing.T) {
	_, rules, _ := newTestWorld(t)
	stats, _ := rules.Enemies.Stats(types.EnemyPhaseBoss)

	abilities := &components.AbilitiesComponent{}
	p2, _ := stats.Phase(2)
	ApplyAbilitySet(abilities, p2.Abilities, 10)
	p1, _ := stats.Phase(1)
	ApplyAbilitySet(abilities, p1.Abilities, 10)

	if !abilities.MinionSpawn.Active || abilities.MinionSpawn.MaxMinions != 2 || abilities.MinionSpawn.Interval != 6 {
		t.Errorf("Expected phase 2 minion spawn to stay active, got %+v", abilities.MinionSpawn)
	}
	if !abilities.Regeneration.Active || abilities.Regeneration.Rate != 15 || abilities.Regeneration.Interval != 1 {
		t.Errorf("Expected phase 1 regeneration, got %+v", abilities.Regeneration)
	}
}
