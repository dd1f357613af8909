package config

import (
	"fmt"
	"os"

	"github.com/gonewx/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// KindThreshold 累积概率表的一项：roll < Below 时选择 Kind
type KindThreshold struct {
	Below float64         `yaml:"below"`
	Kind  types.EnemyKind `yaml:"kind"`
}

// WaveBand 普通波的敌人构成区间
type WaveBand struct {
	MinWave    int               `yaml:"minWave"`
	Uniform    []types.EnemyKind `yaml:"uniform"` // 非空时忽略 thresholds，均匀抽取
	Thresholds []KindThreshold   `yaml:"thresholds"`
	Fallback   types.EnemyKind   `yaml:"fallback"`
}

// Pick 按 roll ∈ [0, 1) 选择敌人种类
func (b *WaveBand) Pick(roll float64) types.EnemyKind {
	if len(b.Uniform) > 0 {
		return pickUniform(b.Uniform, roll)
	}
	for _, t := range b.Thresholds {
		if roll < t.Below {
			return t.Kind
		}
	}
	return b.Fallback
}

func pickUniform(kinds []types.EnemyKind, roll float64) types.EnemyKind {
	idx := int(roll * float64(len(kinds)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(kinds) {
		idx = len(kinds) - 1
	}
	return kinds[idx]
}

// WaveConfig waves.yaml 文件结构
type WaveConfig struct {
	BossWaveInterval int               `yaml:"bossWaveInterval"`
	BossQuota        ScaledValue       `yaml:"bossQuota"`
	BossSpawnDelay   float64           `yaml:"bossSpawnDelay"`
	BossRoster       []types.EnemyKind `yaml:"bossRoster"`
	BossWaveRoster   []types.EnemyKind `yaml:"bossWaveRoster"`

	RegularQuota      ScaledValue `yaml:"regularQuota"`
	RegularSpawnDelay ScaledValue `yaml:"regularSpawnDelay"`

	Bands []WaveBand `yaml:"bands"` // 按 minWave 降序
}

// IsBossWave 是否为 Boss 波
func (c *WaveConfig) IsBossWave(wave int) bool {
	return wave > 0 && wave%c.BossWaveInterval == 0
}

// Quota 第 wave 波的敌人总数
func (c *WaveConfig) Quota(wave int) int {
	if c.IsBossWave(wave) {
		return c.BossQuota.IntAt(wave)
	}
	return c.RegularQuota.IntAt(wave)
}

// SpawnDelay 第 wave 波的出怪间隔（秒）
func (c *WaveConfig) SpawnDelay(wave int) float64 {
	if c.IsBossWave(wave) {
		return c.BossSpawnDelay
	}
	return c.RegularSpawnDelay.At(wave)
}

// BossKind Boss 波的首个敌人，按 floor(wave/interval) 轮换
func (c *WaveConfig) BossKind(wave int) types.EnemyKind {
	idx := (wave / c.BossWaveInterval) % len(c.BossRoster)
	return c.BossRoster[idx]
}

// BossWaveKind Boss 波中后续敌人，从特殊敌人表中均匀抽取
func (c *WaveConfig) BossWaveKind(roll float64) types.EnemyKind {
	return pickUniform(c.BossWaveRoster, roll)
}

// Band 返回第 wave 波所在的构成区间
func (c *WaveConfig) Band(wave int) *WaveBand {
	for i := range c.Bands {
		if wave >= c.Bands[i].MinWave {
			return &c.Bands[i]
		}
	}
	return &c.Bands[len(c.Bands)-1]
}

// RegularKind 普通波按区间和 roll 选择敌人种类
func (c *WaveConfig) RegularKind(wave int, roll float64) types.EnemyKind {
	return c.Band(wave).Pick(roll)
}

// Kinds 返回配置中引用到的所有敌人种类
func (c *WaveConfig) Kinds() []types.EnemyKind {
	kinds := make([]types.EnemyKind, 0, 16)
	kinds = append(kinds, c.BossRoster...)
	kinds = append(kinds, c.BossWaveRoster...)
	for _, b := range c.Bands {
		kinds = append(kinds, b.Uniform...)
		for _, t := range b.Thresholds {
			kinds = append(kinds, t.Kind)
		}
		if b.Fallback != "" {
			kinds = append(kinds, b.Fallback)
		}
	}
	return kinds
}

// ParseWaveConfig 解析 waves.yaml 内容
func ParseWaveConfig(data []byte) (*WaveConfig, error) {
	var config WaveConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse wave YAML: %w", err)
	}
	if err := validateWaveConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid wave config: %w", err)
	}
	return &config, nil
}

// LoadWaveConfig 从 YAML 文件加载波次规则
func LoadWaveConfig(filePath string) (*WaveConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave file %s: %w", filePath, err)
	}
	return ParseWaveConfig(data)
}

func validateWaveConfig(c *WaveConfig) error {
	if c.BossWaveInterval <= 0 {
		return fmt.Errorf("bossWaveInterval must be positive, got %d", c.BossWaveInterval)
	}
	if c.BossSpawnDelay <= 0 {
		return fmt.Errorf("bossSpawnDelay must be positive, got %v", c.BossSpawnDelay)
	}
	if len(c.BossRoster) == 0 {
		return fmt.Errorf("bossRoster cannot be empty")
	}
	if len(c.BossWaveRoster) == 0 {
		return fmt.Errorf("bossWaveRoster cannot be empty")
	}
	if c.BossQuota.Base < 1 || c.RegularQuota.Base < 1 {
		return fmt.Errorf("quota base must be at least 1")
	}
	if err := c.BossQuota.validate("bossQuota"); err != nil {
		return err
	}
	if err := c.RegularQuota.validate("regularQuota"); err != nil {
		return err
	}
	if err := c.RegularSpawnDelay.validate("regularSpawnDelay"); err != nil {
		return err
	}
	if c.RegularSpawnDelay.PerWave < 0 && (c.RegularSpawnDelay.Min == nil || *c.RegularSpawnDelay.Min <= 0) {
		return fmt.Errorf("regularSpawnDelay: a positive min is required when perWave is negative")
	}

	if len(c.Bands) == 0 {
		return fmt.Errorf("bands cannot be empty")
	}
	for i, band := range c.Bands {
		if i > 0 && band.MinWave >= c.Bands[i-1].MinWave {
			return fmt.Errorf("bands must be sorted by minWave descending, band %d (minWave %d) follows %d",
				i, band.MinWave, c.Bands[i-1].MinWave)
		}
		if len(band.Uniform) == 0 && band.Fallback == "" {
			return fmt.Errorf("band %d (minWave %d): either uniform or fallback is required", i, band.MinWave)
		}
		prev := 0.0
		for _, t := range band.Thresholds {
			if t.Below <= prev || t.Below > 1 {
				return fmt.Errorf("band %d (minWave %d): thresholds must increase within (0, 1], got %v after %v",
					i, band.MinWave, t.Below, prev)
			}
			if t.Kind == "" {
				return fmt.Errorf("band %d (minWave %d): threshold kind cannot be empty", i, band.MinWave)
			}
			prev = t.Below
		}
	}
	if last := c.Bands[len(c.Bands)-1]; last.MinWave > 1 {
		return fmt.Errorf("last band must cover wave 1, got minWave %d", last.MinWave)
	}
	return nil
}
