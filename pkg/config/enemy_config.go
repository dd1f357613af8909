package config

import (
	"fmt"
	"os"

	"github.com/gonewx/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// AbilityStats 敌人特殊能力参数
type AbilityStats struct {
	Rate       ScaledValue `yaml:"rate"`       // 每次触发的回复量
	Interval   ScaledValue `yaml:"interval"`   // 触发间隔（秒）
	Range      float64     `yaml:"range"`      // 治疗光环半径（像素）
	MaxMinions ScaledValue `yaml:"maxMinions"` // 场上小兵上限
}

// AbilitySet 敌人可拥有的能力，未配置的为 nil
type AbilitySet struct {
	Regeneration *AbilityStats `yaml:"regeneration"`
	ShieldRegen  *AbilityStats `yaml:"shieldRegen"`
	MinionSpawn  *AbilityStats `yaml:"minionSpawn"`
	HealAura     *AbilityStats `yaml:"healAura"`
}

// PhaseStats Boss 阶段配置
type PhaseStats struct {
	Phase           int        `yaml:"phase"`
	SpeedMultiplier float64    `yaml:"speedMultiplier"`
	Abilities       AbilitySet `yaml:"abilities"`
}

// EnemyStats 单种敌人的属性
type EnemyStats struct {
	Health  ScaledValue `yaml:"health"`
	Shields ScaledValue `yaml:"shields"`
	Speed   float64     `yaml:"speed"` // 格/秒
	Armor   float64     `yaml:"armor"` // 伤害减免 0~1
	Reward  ScaledValue `yaml:"reward"`
	Size    float64     `yaml:"size"` // 碰撞半径

	Flying         bool    `yaml:"flying"`
	Camouflaged    bool    `yaml:"camouflaged"`
	Boss           bool    `yaml:"boss"`
	SlowResistance float64 `yaml:"slowResistance"` // 减速/冰冻抗性

	SplitInto  types.EnemyKind `yaml:"splitInto"`
	SplitCount int             `yaml:"splitCount"`

	MaxPhases int          `yaml:"maxPhases"`
	Phases    []PhaseStats `yaml:"phases"`

	Abilities AbilitySet `yaml:"abilities"`
}

// Phase 返回指定阶段的配置
func (s *EnemyStats) Phase(phase int) (*PhaseStats, bool) {
	for i := range s.Phases {
		if s.Phases[i].Phase == phase {
			return &s.Phases[i], true
		}
	}
	return nil, false
}

// EnemyConfig enemies.yaml 文件结构
type EnemyConfig struct {
	Enemies    map[types.EnemyKind]EnemyStats `yaml:"enemies"`
	MinionKind types.EnemyKind                `yaml:"minionKind"` // Boss 召唤的敌人种类
}

// Stats 获取指定种类的属性
func (c *EnemyConfig) Stats(kind types.EnemyKind) (*EnemyStats, bool) {
	stats, ok := c.Enemies[kind]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// ParseEnemyConfig 解析 enemies.yaml 内容
func ParseEnemyConfig(data []byte) (*EnemyConfig, error) {
	var config EnemyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy YAML: %w", err)
	}
	if err := validateEnemyConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid enemy config: %w", err)
	}
	return &config, nil
}

// LoadEnemyConfig 从 YAML 文件加载敌人属性
func LoadEnemyConfig(filePath string) (*EnemyConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy file %s: %w", filePath, err)
	}
	return ParseEnemyConfig(data)
}

func validateEnemyConfig(c *EnemyConfig) error {
	if len(c.Enemies) == 0 {
		return fmt.Errorf("enemies cannot be empty")
	}

	for kind, stats := range c.Enemies {
		if kind == "" {
			return fmt.Errorf("enemy kind cannot be empty")
		}
		if stats.Health.Base <= 0 {
			return fmt.Errorf("enemy %s: health.base must be positive, got %v", kind, stats.Health.Base)
		}
		if stats.Speed <= 0 {
			return fmt.Errorf("enemy %s: speed must be positive, got %v", kind, stats.Speed)
		}
		if stats.Size <= 0 {
			return fmt.Errorf("enemy %s: size must be positive, got %v", kind, stats.Size)
		}
		if stats.Armor < 0 || stats.Armor >= 1 {
			return fmt.Errorf("enemy %s: armor must be in [0, 1), got %v", kind, stats.Armor)
		}
		if stats.SlowResistance < 0 || stats.SlowResistance > 1 {
			return fmt.Errorf("enemy %s: slowResistance must be in [0, 1], got %v", kind, stats.SlowResistance)
		}
		for field, v := range map[string]ScaledValue{"health": stats.Health, "shields": stats.Shields, "reward": stats.Reward} {
			if err := v.validate(fmt.Sprintf("enemy %s: %s", kind, field)); err != nil {
				return err
			}
		}
		if stats.SplitInto != "" {
			if _, ok := c.Enemies[stats.SplitInto]; !ok {
				return fmt.Errorf("enemy %s: splitInto refers to unknown enemy %s", kind, stats.SplitInto)
			}
			if stats.SplitCount <= 0 {
				return fmt.Errorf("enemy %s: splitCount must be positive when splitInto is set", kind)
			}
		}
		if len(stats.Phases) > 0 && stats.MaxPhases <= 0 {
			return fmt.Errorf("enemy %s: maxPhases must be positive when phases are configured", kind)
		}
		for _, p := range stats.Phases {
			if p.Phase < 1 || p.Phase > stats.MaxPhases {
				return fmt.Errorf("enemy %s: phase %d out of range [1, %d]", kind, p.Phase, stats.MaxPhases)
			}
			if p.SpeedMultiplier <= 0 {
				return fmt.Errorf("enemy %s: phase %d speedMultiplier must be positive", kind, p.Phase)
			}
			if err := validateAbilitySet(fmt.Sprintf("enemy %s phase %d", kind, p.Phase), p.Abilities); err != nil {
				return err
			}
		}
		if err := validateAbilitySet(fmt.Sprintf("enemy %s", kind), stats.Abilities); err != nil {
			return err
		}
	}

	if c.MinionKind != "" {
		if _, ok := c.Enemies[c.MinionKind]; !ok {
			return fmt.Errorf("minionKind refers to unknown enemy %s", c.MinionKind)
		}
	}

	return nil
}

func validateAbilitySet(owner string, set AbilitySet) error {
	abilities := []struct {
		name  string
		stats *AbilityStats
	}{
		{"regeneration", set.Regeneration},
		{"shieldRegen", set.ShieldRegen},
		{"minionSpawn", set.MinionSpawn},
		{"healAura", set.HealAura},
	}
	for _, a := range abilities {
		if a.stats == nil {
			continue
		}
		if a.stats.Interval.Base <= 0 && a.stats.Interval.Min == nil {
			return fmt.Errorf("%s: %s interval must be positive", owner, a.name)
		}
		if err := a.stats.Interval.validate(owner + ": " + a.name + ".interval"); err != nil {
			return err
		}
	}
	if set.HealAura != nil && set.HealAura.Range <= 0 {
		return fmt.Errorf("%s: healAura range must be positive", owner)
	}
	if set.MinionSpawn != nil && set.MinionSpawn.MaxMinions.Base <= 0 {
		return fmt.Errorf("%s: minionSpawn maxMinions must be positive", owner)
	}
	return nil
}
