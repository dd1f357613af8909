package main

import (
	"flag"
	"log"

	"github.com/gonewx/towerdefense/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	rulesDir = flag.String("rules", "", "规则覆盖目录（YAML），为空使用内置规则")
	seed     = flag.Int64("seed", 0, "随机数种子，0 表示使用当前时间")
)

func main() {
	flag.Parse()

	game, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		RulesDir: *rulesDir,
		Seed:     *seed,
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	width, height := game.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Tower Defense")
	ebiten.SetFullscreen(game.Settings().GetSettings().Fullscreen)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}

	if err := game.Settings().Save(); err != nil {
		log.Printf("Warning: Failed to save settings: %v", err)
	}
}
