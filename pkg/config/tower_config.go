package config

import (
	"fmt"
	"os"

	"github.com/gonewx/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// UpgradeStats 单条升级路线
// 数值为 0 的字段表示保持原值
type UpgradeStats struct {
	ID           types.UpgradeType `yaml:"id"`
	Name         string            `yaml:"name"`
	Cost         int               `yaml:"cost"`
	Damage       float64           `yaml:"damage"`
	Range        float64           `yaml:"range"`
	FireRate     float64           `yaml:"fireRate"`
	Special      types.Special     `yaml:"special"`
	SplashRadius float64           `yaml:"splashRadius"`
}

// TowerStats 单种塔的属性
type TowerStats struct {
	Name            string        `yaml:"name"`
	Cost            int           `yaml:"cost"`
	Range           float64       `yaml:"range"` // 格
	Damage          float64       `yaml:"damage"`
	FireRate        float64       `yaml:"fireRate"`        // 每秒发射次数
	ProjectileSpeed float64       `yaml:"projectileSpeed"` // 像素/秒
	Special         types.Special `yaml:"special"`
	SplashRadius    float64       `yaml:"splashRadius"` // 格

	// 状态效果（元素塔命中时、减速场每步施加）
	StatusDuration float64 `yaml:"statusDuration"`
	StatusPotency  float64 `yaml:"statusPotency"`

	// 光环倍率下限（增伤塔、雷达塔）
	AuraStrength float64 `yaml:"auraStrength"`

	Upgrades []UpgradeStats `yaml:"upgrades"`
}

// ShotConfig 特殊射击参数
type ShotConfig struct {
	PierceCount           int     `yaml:"pierceCount"`
	PierceSpeedMultiplier float64 `yaml:"pierceSpeedMultiplier"`
	CriticalChance        float64 `yaml:"criticalChance"`
	CriticalMultiplier    float64 `yaml:"criticalMultiplier"`
	ChainCooldown         float64 `yaml:"chainCooldown"`
	ChainCount            int     `yaml:"chainCount"`
	ChainRange            float64 `yaml:"chainRange"` // 格
	ChainFalloff          float64 `yaml:"chainFalloff"`
	BeamFraction          float64 `yaml:"beamFraction"`
	BeamLifetime          float64 `yaml:"beamLifetime"`
	BeamSpeed             float64 `yaml:"beamSpeed"`
}

// TowerConfig towers.yaml 文件结构
type TowerConfig struct {
	Order  []types.TowerType              `yaml:"order"` // 建造菜单顺序
	Towers map[types.TowerType]TowerStats `yaml:"towers"`
	Shots  ShotConfig                     `yaml:"shots"`
}

// Stats 获取指定塔的属性
func (c *TowerConfig) Stats(towerType types.TowerType) (*TowerStats, bool) {
	stats, ok := c.Towers[towerType]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// Upgrade 查找指定塔的升级路线
func (c *TowerConfig) Upgrade(towerType types.TowerType, id types.UpgradeType) (*UpgradeStats, bool) {
	stats, ok := c.Towers[towerType]
	if !ok {
		return nil, false
	}
	for i := range stats.Upgrades {
		if stats.Upgrades[i].ID == id {
			return &stats.Upgrades[i], true
		}
	}
	return nil, false
}

// ParseTowerConfig 解析 towers.yaml 内容
func ParseTowerConfig(data []byte) (*TowerConfig, error) {
	var config TowerConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tower YAML: %w", err)
	}
	if err := validateTowerConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid tower config: %w", err)
	}
	return &config, nil
}

// LoadTowerConfig 从 YAML 文件加载塔属性
func LoadTowerConfig(filePath string) (*TowerConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tower file %s: %w", filePath, err)
	}
	return ParseTowerConfig(data)
}

func validateTowerConfig(c *TowerConfig) error {
	if len(c.Towers) == 0 {
		return fmt.Errorf("towers cannot be empty")
	}
	if len(c.Order) == 0 {
		return fmt.Errorf("order cannot be empty")
	}
	for _, t := range c.Order {
		if _, ok := c.Towers[t]; !ok {
			return fmt.Errorf("order refers to unknown tower %s", t)
		}
	}

	for towerType, stats := range c.Towers {
		if stats.Cost <= 0 {
			return fmt.Errorf("tower %s: cost must be positive, got %d", towerType, stats.Cost)
		}
		if stats.Range <= 0 {
			return fmt.Errorf("tower %s: range must be positive, got %v", towerType, stats.Range)
		}
		switch stats.Special {
		case types.SpecialDamageAura, types.SpecialRangeAura:
			if stats.AuraStrength <= 0 {
				return fmt.Errorf("tower %s: auraStrength must be positive for %s", towerType, stats.Special)
			}
		case types.SpecialSlowAura:
			if stats.StatusDuration <= 0 {
				return fmt.Errorf("tower %s: statusDuration must be positive for slowAura", towerType)
			}
		default:
			if stats.Damage <= 0 || stats.FireRate <= 0 || stats.ProjectileSpeed <= 0 {
				return fmt.Errorf("tower %s: damage, fireRate and projectileSpeed must be positive", towerType)
			}
		}
		if stats.Special == types.SpecialSplash && stats.SplashRadius <= 0 {
			return fmt.Errorf("tower %s: splashRadius must be positive for splash towers", towerType)
		}

		seen := make(map[types.UpgradeType]bool)
		for _, up := range stats.Upgrades {
			if up.ID == "" {
				return fmt.Errorf("tower %s: upgrade id cannot be empty", towerType)
			}
			if seen[up.ID] {
				return fmt.Errorf("tower %s: duplicate upgrade %s", towerType, up.ID)
			}
			seen[up.ID] = true
			if up.Cost <= 0 {
				return fmt.Errorf("tower %s: upgrade %s cost must be positive", towerType, up.ID)
			}
			if up.Damage < 0 || up.Range < 0 || up.FireRate < 0 || up.SplashRadius < 0 {
				return fmt.Errorf("tower %s: upgrade %s stats cannot be negative", towerType, up.ID)
			}
		}
	}

	s := c.Shots
	if s.PierceCount <= 0 || s.PierceSpeedMultiplier <= 0 {
		return fmt.Errorf("shots: pierceCount and pierceSpeedMultiplier must be positive")
	}
	if s.CriticalChance < 0 || s.CriticalChance > 1 {
		return fmt.Errorf("shots: criticalChance must be in [0, 1], got %v", s.CriticalChance)
	}
	if s.ChainCount < 0 || s.ChainRange <= 0 {
		return fmt.Errorf("shots: chainCount cannot be negative and chainRange must be positive")
	}
	if s.ChainFalloff <= 0 || s.ChainFalloff > 1 {
		return fmt.Errorf("shots: chainFalloff must be in (0, 1], got %v", s.ChainFalloff)
	}
	if s.ChainCooldown < 0 || s.BeamFraction < 0 || s.BeamLifetime <= 0 || s.BeamSpeed <= 0 {
		return fmt.Errorf("shots: invalid chain cooldown or beam parameters")
	}
	return nil
}
