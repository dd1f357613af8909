package systems

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
)

func newTestWaveSystem(w *testWorld, rng RandomSource) *WaveSpawnSystem {
	return NewWaveSpawnSystem(w.em, w.gs, w.rules, w.path, w.events, rng)
}

func (w *testWorld) spawnedKinds() []types.EnemyKind {
	kinds := make([]types.EnemyKind, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](w.em) {
		kinds = append(kinds, w.enemy(id).Kind)
	}
	return kinds
}

func (w *testWorld) recordEvents(eventTypes ...game.EventType) *[]game.Event {
	recorded := make([]game.Event, 0)
	for _, et := range eventTypes {
		w.events.Subscribe(et, game.ListenerFunc(func(e game.Event) {
			recorded = append(recorded, e)
		}))
	}
	return &recorded
}

func TestWaveSpawn_DelayBeforeFirstWave(t *testing.T) {
	w := newTestWorld(t)
	system := newTestWaveSystem(w, &fixedRandom{values: []float64{0}})
	events := w.recordEvents(game.EventWaveStarted)

	for i := 0; i < 5; i++ {
		system.Update(0.5)
	}
	if w.gs.WaveActive || w.gs.Wave != 0 {
		t.Fatalf("Expected no wave before the delay elapsed, got wave %d active=%v", w.gs.Wave, w.gs.WaveActive)
	}
	if !almostEqual(w.gs.TimeToNextWave(), 0.5) {
		t.Errorf("Expected 0.5s to next wave, got %.2f", w.gs.TimeToNextWave())
	}

	system.Update(0.5)
	if !w.gs.WaveActive || w.gs.Wave != 1 {
		t.Fatalf("Expected wave 1 to start after 3s, got wave %d active=%v", w.gs.Wave, w.gs.WaveActive)
	}
	if w.gs.EnemiesPerWave != 5 {
		t.Errorf("Expected quota 5 for wave 1, got %d", w.gs.EnemiesPerWave)
	}
	if len(*events) != 1 || (*events)[0].Wave != 1 || (*events)[0].Amount != 5 {
		t.Errorf("Expected one WaveStarted event for wave 1 with amount 5, got %+v", *events)
	}
	if len(w.spawnedKinds()) != 0 {
		t.Error("Expected the first spawn to wait one spawn delay")
	}
}

func TestWaveSpawn_SpawnCadence(t *testing.T) {
	w := newTestWorld(t)
	system := newTestWaveSystem(w, &fixedRandom{values: []float64{0}})
	system.StartWave()
	delay := w.gs.SpawnDelay

	system.Update(delay / 2)
	if n := len(w.spawnedKinds()); n != 0 {
		t.Fatalf("Expected no spawn before the spawn delay, got %d", n)
	}
	system.Update(delay / 2)
	if n := len(w.spawnedKinds()); n != 1 {
		t.Fatalf("Expected 1 spawn after one spawn delay, got %d", n)
	}
	if w.gs.SpawnTimer != 0 || w.gs.EnemiesSpawned != 1 {
		t.Errorf("Expected timer reset and 1 spawned, got timer %.2f spawned %d", w.gs.SpawnTimer, w.gs.EnemiesSpawned)
	}
}

func TestWaveSpawn_BossWaveScenario(t *testing.T) {
	w := newTestWorld(t)
	system := newTestWaveSystem(w, &fixedRandom{values: []float64{0}})
	events := w.recordEvents(game.EventWaveStarted, game.EventWaveCompleted)
	w.gs.Wave = 9

	system.StartWave()
	if w.gs.Wave != 10 || w.gs.EnemiesPerWave != 1 || w.gs.SpawnDelay != 3 {
		t.Fatalf("Expected wave 10 with quota 1 and delay 3, got wave %d quota %d delay %.2f",
			w.gs.Wave, w.gs.EnemiesPerWave, w.gs.SpawnDelay)
	}

	system.Update(3)

	kinds := w.spawnedKinds()
	if len(kinds) != 1 || kinds[0] != types.EnemySpawnerBoss {
		t.Fatalf("Expected a single spawner-boss, got %v", kinds)
	}
	if w.gs.WaveActive {
		t.Error("Expected wave to complete after reaching its quota")
	}
	if len(*events) != 2 || (*events)[1].Type != game.EventWaveCompleted || (*events)[1].Amount != 1 {
		t.Errorf("Expected WaveStarted then WaveCompleted, got %+v", *events)
	}

	// 完成后不再出怪
	system.Update(1)
	if n := len(w.spawnedKinds()); n != 1 {
		t.Errorf("Expected no extra spawns after completion, got %d enemies", n)
	}
}

func TestWaveSpawn_BossWaveFollowers(t *testing.T) {
	w := newTestWorld(t)
	system := newTestWaveSystem(w, &fixedRandom{values: []float64{0.6}})
	w.gs.Wave = 19

	system.StartWave()
	if w.gs.EnemiesPerWave != 2 {
		t.Fatalf("Expected quota 2 for wave 20, got %d", w.gs.EnemiesPerWave)
	}
	system.Update(3)
	system.Update(3)

	kinds := w.spawnedKinds()
	expected := []types.EnemyKind{types.EnemyArmoredBoss, types.EnemyHealer}
	if len(kinds) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("Spawn %d: expected %s, got %s", i, expected[i], kinds[i])
		}
	}
}

func TestWaveSpawn_NextKind_RegularBands(t *testing.T) {
	tests := []struct {
		wave     int
		roll     float64
		expected types.EnemyKind
	}{
		{1, 0.0, types.EnemyBasic},
		{3, 0.39, types.EnemyFast},
		{3, 0.4, types.EnemyBasic},
		{5, 0.1, types.EnemyFlying},
		{5, 0.9, types.EnemyTank},
		{8, 0.1, types.EnemyCamo},
		{12, 0.1, types.EnemySwarm},
		{12, 0.9, types.EnemyTank},
		{15, 0.0, types.EnemyBasic},
		{15, 0.99, types.EnemySwarm},
	}
	for _, tt := range tests {
		w := newTestWorld(t)
		system := newTestWaveSystem(w, &fixedRandom{values: []float64{tt.roll}})
		w.gs.Wave = tt.wave
		w.gs.WaveActive = true
		if got := system.NextKind(); got != tt.expected {
			t.Errorf("Wave %d roll %.2f: expected %s, got %s", tt.wave, tt.roll, tt.expected, got)
		}
	}
}

func TestWaveSpawn_GameOverIsNoop(t *testing.T) {
	w := newTestWorld(t)
	system := newTestWaveSystem(w, &fixedRandom{values: []float64{0}})
	w.gs.GameOver = true

	system.Update(10)
	if w.gs.Wave != 0 || w.gs.WaveTimer != 0 {
		t.Errorf("Expected no progress after game over, got wave %d timer %.2f", w.gs.Wave, w.gs.WaveTimer)
	}
}
