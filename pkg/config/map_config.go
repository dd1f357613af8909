package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapConfig 地图尺寸与路径
type MapConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Waypoints [][]int `yaml:"waypoints"` // 每项为 [col, row]
}

// ParseMapConfig 解析 map.yaml 内容
func ParseMapConfig(data []byte) (*MapConfig, error) {
	var config MapConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse map YAML: %w", err)
	}
	if err := validateMapConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid map config: %w", err)
	}
	return &config, nil
}

// LoadMapConfig 从 YAML 文件加载地图
func LoadMapConfig(filePath string) (*MapConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", filePath, err)
	}
	return ParseMapConfig(data)
}

func validateMapConfig(c *MapConfig) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("map size must be positive, got %dx%d", c.Width, c.Height)
	}
	if len(c.Waypoints) < 2 {
		return fmt.Errorf("at least 2 waypoints are required, got %d", len(c.Waypoints))
	}
	for i, wp := range c.Waypoints {
		if len(wp) != 2 {
			return fmt.Errorf("waypoint %d: expected [col, row], got %v", i, wp)
		}
		if wp[0] < 0 || wp[0] >= c.Width || wp[1] < 0 || wp[1] >= c.Height {
			return fmt.Errorf("waypoint %d: (%d, %d) out of bounds", i, wp[0], wp[1])
		}
	}
	return nil
}
