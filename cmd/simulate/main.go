// simulate 无界面运行模拟，用于验证规则和平衡性
//
// 用法：
//
//	go run ./cmd/simulate -seconds 300 -seed 42
//	go run ./cmd/simulate -rules ./myrules -verbose
//
// 自动建造器沿路径两侧依次建塔，钱够时升级已有的塔，
// 结束时输出波次、击杀、逃脱等统计。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/simulation"
	"github.com/gonewx/towerdefense/pkg/types"
)

var (
	seconds  = flag.Float64("seconds", 300, "模拟时长（秒）")
	seed     = flag.Int64("seed", 1, "随机数种子")
	rulesDir = flag.String("rules", "", "规则覆盖目录（YAML），为空使用内置规则")
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	noBuild  = flag.Bool("no-build", false, "不自动建塔")
)

// buildOrder 自动建造器轮流建造的塔
var buildOrder = []types.TowerType{
	types.TowerBasic,
	types.TowerCannon,
	types.TowerIce,
	types.TowerSniper,
	types.TowerFire,
	types.TowerLightning,
	types.TowerRadar,
	types.TowerPoison,
	types.TowerLaser,
	types.TowerAmplifier,
}

// stats 通过事件总线收集的统计
type stats struct {
	killed      map[types.EnemyKind]int
	escaped     map[types.EnemyKind]int
	bossPhases  int
	wavesDone   int
	towersBuilt int
	upgrades    int
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	rules, err := config.LoadRules(*rulesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load rules: %v\n", err)
		os.Exit(1)
	}

	loop, err := simulation.NewLoop(rules, simulation.WithSeed(*seed), simulation.WithVerbose(*verbose))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create simulation: %v\n", err)
		os.Exit(1)
	}

	st := subscribe(loop.Events())
	sites := buildSites(loop.Path())

	loop.Start()
	stepsPerSecond := int(math.Round(1 / loop.FixedStep()))
	totalSteps := int(*seconds * float64(stepsPerSecond))
	next := 0
	for i := 0; i < totalSteps && !loop.IsGameOver(); i++ {
		loop.Step()
		if !*noBuild && i%stepsPerSecond == 0 {
			next = autoBuild(loop, sites, next)
		}
	}

	report(loop.State(), st)
}

func subscribe(bus *game.EventBus) *stats {
	st := &stats{
		killed:  make(map[types.EnemyKind]int),
		escaped: make(map[types.EnemyKind]int),
	}
	bus.Subscribe(game.EventEnemyKilled, game.ListenerFunc(func(e game.Event) {
		st.killed[e.EnemyKind]++
	}))
	bus.Subscribe(game.EventEnemyEscaped, game.ListenerFunc(func(e game.Event) {
		st.escaped[e.EnemyKind]++
		log.Printf("[Simulate] %s escaped on wave %d, lives %d", e.EnemyKind, e.Wave, e.Amount)
	}))
	bus.Subscribe(game.EventWaveCompleted, game.ListenerFunc(func(e game.Event) {
		st.wavesDone++
	}))
	bus.Subscribe(game.EventBossPhaseChanged, game.ListenerFunc(func(e game.Event) {
		st.bossPhases++
	}))
	bus.Subscribe(game.EventTowerBuilt, game.ListenerFunc(func(e game.Event) {
		st.towersBuilt++
	}))
	bus.Subscribe(game.EventTowerUpgraded, game.ListenerFunc(func(e game.Event) {
		st.upgrades++
	}))
	return st
}

// buildSites 路径两侧可建造的格子，按路径顺序排列，不重复
func buildSites(path *grid.GridPath) []grid.Cell {
	seen := make(map[grid.Cell]bool)
	var sites []grid.Cell
	offsets := []grid.Cell{{Col: 0, Row: -1}, {Col: 0, Row: 1}, {Col: -1, Row: 0}, {Col: 1, Row: 0}}
	for _, wp := range path.Waypoints() {
		for _, off := range offsets {
			c := grid.Cell{Col: wp.Col + off.Col, Row: wp.Row + off.Row}
			if seen[c] || !path.IsBuildable(c.Col, c.Row) {
				continue
			}
			seen[c] = true
			sites = append(sites, c)
		}
	}
	return sites
}

// autoBuild 先尝试建一座新塔，否则升级最早建造的未升级塔
// 返回下一座塔在 buildOrder 中的位置
func autoBuild(loop *simulation.Loop, sites []grid.Cell, next int) int {
	towerType := buildOrder[next%len(buildOrder)]
	loop.SelectTowerType(towerType)
	for _, c := range sites {
		if !loop.CanBuildAt(c.Col, c.Row) {
			continue
		}
		if loop.PlaceTower(c.Col, c.Row) {
			return next + 1
		}
		break
	}

	for _, t := range loop.Towers() {
		if t.Level > 1 {
			continue
		}
		if upgrades := loop.AvailableUpgrades(t.ID); len(upgrades) > 0 {
			loop.UpgradeTower(t.ID, upgrades[0].ID)
			break
		}
	}
	return next
}

func report(state simulation.StateView, st *stats) {
	fmt.Println("════════════════════════════════════════")
	fmt.Printf("Run:        %s\n", state.RunID)
	fmt.Printf("Simulated:  %.1fs (%d steps)\n", state.Elapsed, state.Steps)
	fmt.Printf("Wave:       %d (%d completed)\n", state.Wave, st.wavesDone)
	fmt.Printf("Lives:      %d\n", state.Lives)
	fmt.Printf("Money:      %d\n", state.Money)
	fmt.Printf("Score:      %d\n", state.Score)
	fmt.Printf("Kills:      %d (bosses %d)\n", state.EnemiesKilled, state.BossesKilled)
	fmt.Printf("Towers:     %d built, %d upgraded\n", st.towersBuilt, st.upgrades)
	fmt.Printf("Boss phase changes: %d\n", st.bossPhases)
	if state.GameOver {
		fmt.Println("Result:     GAME OVER")
	}
	fmt.Println("────────────────────────────────────────")
	for _, kind := range types.AllEnemyKinds() {
		if st.killed[kind] == 0 && st.escaped[kind] == 0 {
			continue
		}
		fmt.Printf("  %-14s killed %4d  escaped %3d\n", kind, st.killed[kind], st.escaped[kind])
	}
}
