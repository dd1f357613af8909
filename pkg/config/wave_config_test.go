package config

import (
	"strings"
	"testing"

	"github.com/gonewx/towerdefense/pkg/types"
)

func defaultWaves(t *testing.T) *WaveConfig {
	t.Helper()
	return MustDefaultRules().Waves
}

func TestWaveConfig_QuotaAndDelay(t *testing.T) {
	waves := defaultWaves(t)

	tests := []struct {
		wave  int
		quota int
		delay float64
		boss  bool
	}{
		{1, 5, 1.0, false},
		{2, 6, 0.95, false},
		{9, 9, 0.6, false},
		{10, 1, 3, true},
		{11, 10, 0.5, false},
		{20, 2, 3, true},
		{25, 17, 0.3, false},
		{40, 3, 3, true},
	}

	for _, tt := range tests {
		if got := waves.IsBossWave(tt.wave); got != tt.boss {
			t.Errorf("wave %d: expected boss=%v, got %v", tt.wave, tt.boss, got)
		}
		if got := waves.Quota(tt.wave); got != tt.quota {
			t.Errorf("wave %d: expected quota %d, got %d", tt.wave, tt.quota, got)
		}
		if got := waves.SpawnDelay(tt.wave); got < tt.delay-1e-9 || got > tt.delay+1e-9 {
			t.Errorf("wave %d: expected delay %v, got %v", tt.wave, tt.delay, got)
		}
	}
}

func TestWaveConfig_RegularMonotonic(t *testing.T) {
	waves := defaultWaves(t)

	prevQuota := 0
	prevDelay := 2.0
	for wave := 1; wave <= 100; wave++ {
		if waves.IsBossWave(wave) {
			continue
		}
		quota := waves.Quota(wave)
		delay := waves.SpawnDelay(wave)
		if quota < prevQuota {
			t.Errorf("wave %d: quota decreased from %d to %d", wave, prevQuota, quota)
		}
		if delay > prevDelay {
			t.Errorf("wave %d: delay increased from %v to %v", wave, prevDelay, delay)
		}
		if delay < 0.3 {
			t.Errorf("wave %d: delay %v below floor", wave, delay)
		}
		prevQuota, prevDelay = quota, delay
	}
}

func TestWaveConfig_BossKind(t *testing.T) {
	waves := defaultWaves(t)

	tests := []struct {
		wave int
		want types.EnemyKind
	}{
		{10, types.EnemySpawnerBoss},
		{20, types.EnemyArmoredBoss},
		{30, types.EnemyPhaseBoss},
		{40, types.EnemyShieldBoss},
		{50, types.EnemySpawnerBoss},
	}
	for _, tt := range tests {
		if got := waves.BossKind(tt.wave); got != tt.want {
			t.Errorf("wave %d: expected %s, got %s", tt.wave, tt.want, got)
		}
	}
}

func TestWaveConfig_RegularKindBands(t *testing.T) {
	waves := defaultWaves(t)

	tests := []struct {
		name string
		wave int
		roll float64
		want types.EnemyKind
	}{
		{"early always basic", 1, 0.0, types.EnemyBasic},
		{"early always basic high roll", 2, 0.99, types.EnemyBasic},
		{"wave 3 fast", 3, 0.39, types.EnemyFast},
		{"wave 3 basic", 3, 0.4, types.EnemyBasic},
		{"wave 5 flying", 5, 0.1, types.EnemyFlying},
		{"wave 7 fast", 7, 0.5, types.EnemyFast},
		{"wave 7 tank", 7, 0.6, types.EnemyTank},
		{"wave 8 camo", 8, 0.19, types.EnemyCamo},
		{"wave 9 split", 9, 0.2, types.EnemySplit},
		{"wave 11 tank", 11, 0.8, types.EnemyTank},
		{"wave 12 swarm", 12, 0.1, types.EnemySwarm},
		{"wave 13 healer", 13, 0.2, types.EnemyHealer},
		{"wave 14 fast", 14, 0.84, types.EnemyFast},
		{"wave 14 tank", 14, 0.85, types.EnemyTank},
		{"wave 15 uniform first", 15, 0.0, types.EnemyBasic},
		{"wave 15 uniform last", 15, 0.999, types.EnemySwarm},
		{"wave 30 uniform middle", 30, 0.5, types.EnemyCamo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := waves.RegularKind(tt.wave, tt.roll); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWaveConfig_BossWaveKind(t *testing.T) {
	waves := defaultWaves(t)
	if got := waves.BossWaveKind(0); got != types.EnemyCamo {
		t.Errorf("Expected camo, got %s", got)
	}
	if got := waves.BossWaveKind(0.99); got != types.EnemyFlying {
		t.Errorf("Expected flying, got %s", got)
	}
}

func TestParseWaveConfig_Invalid(t *testing.T) {
	base := `
bossWaveInterval: 10
bossQuota: 1
bossSpawnDelay: 3
bossRoster: [shield-boss]
bossWaveRoster: [camo]
regularQuota: 5
regularSpawnDelay: 1
`
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "empty bands",
			content:     base,
			errContains: "bands cannot be empty",
		},
		{
			name: "unsorted bands",
			content: base + `
bands:
  - minWave: 3
    fallback: basic
  - minWave: 5
    fallback: fast
`,
			errContains: "sorted by minWave descending",
		},
		{
			name: "thresholds not increasing",
			content: base + `
bands:
  - minWave: 0
    thresholds:
      - {below: 0.5, kind: fast}
      - {below: 0.4, kind: tank}
    fallback: basic
`,
			errContains: "thresholds must increase",
		},
		{
			name: "first wave not covered",
			content: base + `
bands:
  - minWave: 3
    fallback: basic
`,
			errContains: "must cover wave 1",
		},
		{
			name: "zero interval",
			content: `
bossWaveInterval: 0
bands:
  - minWave: 0
    fallback: basic
`,
			errContains: "bossWaveInterval must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWaveConfig([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}
