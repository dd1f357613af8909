package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig 模拟循环和经济参数
type GameConfig struct {
	TileSize      float64 `yaml:"tileSize"`      // 每格像素
	TickRate      int     `yaml:"tickRate"`      // 固定步长频率
	MaxFrameDelta float64 `yaml:"maxFrameDelta"` // 单帧累积上限（秒），0 表示不限制
	StartingLives int     `yaml:"startingLives"`
	StartingMoney int     `yaml:"startingMoney"`
	WaveDelay     float64 `yaml:"waveDelay"` // 波次间隔（秒）

	ProjectileRadius   float64 `yaml:"projectileRadius"`
	CollisionSlack     float64 `yaml:"collisionSlack"`
	OutOfBoundsMargin  float64 `yaml:"outOfBoundsMargin"`
	PierceSearchRadius float64 `yaml:"pierceSearchRadius"` // 格

	SellRatio float64 `yaml:"sellRatio"`
}

// FixedStep 返回固定步长（秒）
func (c *GameConfig) FixedStep() float64 {
	return 1.0 / float64(c.TickRate)
}

// ParseGameConfig 解析 game.yaml 内容
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var config GameConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := validateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &config, nil
}

// LoadGameConfig 从 YAML 文件加载模拟参数
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filePath, err)
	}
	return ParseGameConfig(data)
}

func validateGameConfig(c *GameConfig) error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tileSize must be positive, got %v", c.TileSize)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %d", c.TickRate)
	}
	if c.MaxFrameDelta < 0 {
		return fmt.Errorf("maxFrameDelta cannot be negative, got %v", c.MaxFrameDelta)
	}
	if c.StartingLives <= 0 {
		return fmt.Errorf("startingLives must be positive, got %d", c.StartingLives)
	}
	if c.StartingMoney < 0 {
		return fmt.Errorf("startingMoney cannot be negative, got %d", c.StartingMoney)
	}
	if c.WaveDelay < 0 {
		return fmt.Errorf("waveDelay cannot be negative, got %v", c.WaveDelay)
	}
	if c.ProjectileRadius < 0 || c.CollisionSlack < 0 {
		return fmt.Errorf("projectileRadius and collisionSlack cannot be negative")
	}
	if c.OutOfBoundsMargin < 0 {
		return fmt.Errorf("outOfBoundsMargin cannot be negative, got %v", c.OutOfBoundsMargin)
	}
	if c.PierceSearchRadius <= 0 {
		return fmt.Errorf("pierceSearchRadius must be positive, got %v", c.PierceSearchRadius)
	}
	if c.SellRatio < 0 || c.SellRatio > 1 {
		return fmt.Errorf("sellRatio must be between 0 and 1, got %v", c.SellRatio)
	}
	return nil
}
