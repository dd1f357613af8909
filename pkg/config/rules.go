package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/gonewx/towerdefense/pkg/embedded"
)

// 规则文件名
const (
	GameFile    = "game.yaml"
	MapFile     = "map.yaml"
	EnemiesFile = "enemies.yaml"
	TowersFile  = "towers.yaml"
	WavesFile   = "waves.yaml"
)

// Rules 一局游戏用到的全部静态规则
type Rules struct {
	Game    *GameConfig
	Map     *MapConfig
	Enemies *EnemyConfig
	Towers  *TowerConfig
	Waves   *WaveConfig
}

// DefaultRules 加载内置规则
func DefaultRules() (*Rules, error) {
	return LoadRules("")
}

// MustDefaultRules 加载内置规则，失败时 panic
// 内置规则随二进制发布，解析失败属于构建错误
func MustDefaultRules() *Rules {
	rules, err := DefaultRules()
	if err != nil {
		panic(fmt.Sprintf("builtin rules are invalid: %v", err))
	}
	return rules
}

// LoadRules 从目录加载规则
//
// 目录中存在的文件覆盖内置规则，缺失的文件使用内置版本。
// dir 为空时只使用内置规则。
func LoadRules(dir string) (*Rules, error) {
	rules := &Rules{}
	var err error

	if rules.Game, err = loadOne(dir, GameFile, ParseGameConfig); err != nil {
		return nil, err
	}
	if rules.Map, err = loadOne(dir, MapFile, ParseMapConfig); err != nil {
		return nil, err
	}
	if rules.Enemies, err = loadOne(dir, EnemiesFile, ParseEnemyConfig); err != nil {
		return nil, err
	}
	if rules.Towers, err = loadOne(dir, TowersFile, ParseTowerConfig); err != nil {
		return nil, err
	}
	if rules.Waves, err = loadOne(dir, WavesFile, ParseWaveConfig); err != nil {
		return nil, err
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

func loadOne[T any](dir, name string, parse func([]byte) (*T, error)) (*T, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg, err := parse(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			log.Printf("[Rules] Loaded %s", path)
			return cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	data, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read builtin %s: %w", name, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	return cfg, nil
}

// Validate 检查跨文件引用
func (r *Rules) Validate() error {
	for _, kind := range r.Waves.Kinds() {
		if _, ok := r.Enemies.Enemies[kind]; !ok {
			return fmt.Errorf("waves refer to unknown enemy %s", kind)
		}
	}
	if r.Enemies.MinionKind == "" {
		for kind, stats := range r.Enemies.Enemies {
			if stats.Abilities.MinionSpawn != nil {
				return fmt.Errorf("enemy %s spawns minions but minionKind is not set", kind)
			}
			for _, p := range stats.Phases {
				if p.Abilities.MinionSpawn != nil {
					return fmt.Errorf("enemy %s spawns minions but minionKind is not set", kind)
				}
			}
		}
	}
	return nil
}
