// Package app 提供窗口程序的 ebiten.Game 实现
//
// App 只是模拟循环的一个消费者：把真实帧时间交给 simulation.Loop.Advance，
// 把鼠标和键盘映射成命令，再根据只读视图绘制画面。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/simulation"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/basicfont"
)

// AppName gdata 存储使用的应用名
const AppName = "towerdefense"

// hudHeight 地图下方状态栏高度（像素）
const hudHeight = 56

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// RulesDir 规则覆盖目录，为空则只用内置规则
	RulesDir string
	// Seed 随机数种子，0 表示使用当前时间
	Seed int64
}

// App 窗口程序，实现 ebiten.Game 接口
type App struct {
	loop     *simulation.Loop
	store    *game.SnapshotStore
	settings *game.SettingsManager
	face     text.Face

	screenWidth  int
	screenHeight int

	lastFrame time.Time

	// 鼠标所在格子
	hoverCol int
	hoverRow int

	// 状态栏提示
	message      string
	messageTimer float64
}

// NewApp 创建并初始化窗口程序
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	rules, err := config.LoadRules(cfg.RulesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	opts := []simulation.Option{simulation.WithVerbose(cfg.Verbose)}
	if cfg.Seed != 0 {
		opts = append(opts, simulation.WithSeed(cfg.Seed))
	}
	loop, err := simulation.NewLoop(rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	// 无法打开数据目录时退化为仅内存保存
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings manager: %w", err)
	}

	last := types.TowerType(settings.GetSettings().LastTowerType)
	if _, ok := rules.Towers.Stats(last); ok {
		loop.SelectTowerType(last)
	}

	path := loop.Path()
	a := &App{
		loop:         loop,
		store:        game.NewSnapshotStore(gdataManager),
		settings:     settings,
		face:         text.NewGoXFace(basicfont.Face7x13),
		screenWidth:  int(float64(path.Width()) * path.TileSize()),
		screenHeight: int(float64(path.Height())*path.TileSize()) + hudHeight,
		hoverCol:     -1,
		hoverRow:     -1,
	}

	if a.store.Exists() {
		if info, err := a.store.Info(); err == nil {
			a.notify(fmt.Sprintf("Saved battle found: wave %d (F9 to load)", info.Wave))
		}
	}

	loop.Start()
	log.Printf("[App] Started: %dx%d", a.screenWidth, a.screenHeight)
	return a, nil
}

// Update 处理输入并推进模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	now := time.Now()
	if a.lastFrame.IsZero() {
		a.lastFrame = now
	}
	frame := now.Sub(a.lastFrame).Seconds()
	a.lastFrame = now

	a.handleInput()
	a.loop.Advance(frame * a.settings.GetSettings().GameSpeed)

	if a.messageTimer > 0 {
		a.messageTimer -= frame
	}
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 34, B: 40, A: 255})
	a.drawMap(screen)
	a.drawTowers(screen)
	a.drawEnemies(screen)
	a.drawProjectiles(screen)
	a.drawHover(screen)
	a.drawHUD(screen)
}

// Layout 返回逻辑屏幕尺寸：地图加状态栏
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenWidth, a.screenHeight
}

// ScreenSize 逻辑屏幕尺寸，用于设置窗口大小
func (a *App) ScreenSize() (int, int) {
	return a.screenWidth, a.screenHeight
}

// Settings 返回设置管理器
// 用于在程序退出时保存设置
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

func (a *App) notify(msg string) {
	a.message = msg
	a.messageTimer = 3
	log.Printf("[App] %s", msg)
}
