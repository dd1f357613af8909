package app

import (
	"fmt"
	"image/color"

	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBuildable = color.RGBA{R: 58, G: 92, B: 60, A: 255}
	colorPath      = color.RGBA{R: 150, G: 126, B: 90, A: 255}
	colorGridLine  = color.RGBA{R: 0, G: 0, B: 0, A: 40}
	colorRange     = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	colorHealth    = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	colorHurt      = color.RGBA{R: 230, G: 60, B: 40, A: 255}
	colorShield    = color.RGBA{R: 90, G: 170, B: 255, A: 255}
	colorBarBack   = color.RGBA{R: 40, G: 0, B: 0, A: 200}
	colorText      = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	colorWarning   = color.RGBA{R: 255, G: 200, B: 80, A: 255}
)

// 塔的颜色，未列出的用默认色
var towerColors = map[types.TowerType]color.RGBA{
	types.TowerBasic:     {R: 120, G: 160, B: 255, A: 255},
	types.TowerSniper:    {R: 60, G: 60, B: 200, A: 255},
	types.TowerCannon:    {R: 90, G: 90, B: 90, A: 255},
	types.TowerLaser:     {R: 255, G: 60, B: 60, A: 255},
	types.TowerFire:      {R: 255, G: 120, B: 0, A: 255},
	types.TowerIce:       {R: 160, G: 230, B: 255, A: 255},
	types.TowerPoison:    {R: 120, G: 200, B: 40, A: 255},
	types.TowerLightning: {R: 255, G: 240, B: 80, A: 255},
	types.TowerAmplifier: {R: 220, G: 120, B: 255, A: 255},
	types.TowerRadar:     {R: 40, G: 220, B: 200, A: 255},
	types.TowerSlowField: {R: 140, G: 140, B: 255, A: 255},
}

// 敌人的颜色，未列出的用默认色
var enemyColors = map[types.EnemyKind]color.RGBA{
	types.EnemyBasic:       {R: 220, G: 60, B: 60, A: 255},
	types.EnemyFast:        {R: 255, G: 160, B: 60, A: 255},
	types.EnemyTank:        {R: 120, G: 40, B: 40, A: 255},
	types.EnemyFlying:      {R: 200, G: 200, B: 255, A: 255},
	types.EnemyCamo:        {R: 100, G: 120, B: 100, A: 255},
	types.EnemySplit:       {R: 255, G: 100, B: 200, A: 255},
	types.EnemySplitMini:   {R: 255, G: 150, B: 220, A: 255},
	types.EnemyHealer:      {R: 100, G: 255, B: 150, A: 255},
	types.EnemySwarm:       {R: 200, G: 200, B: 60, A: 255},
	types.EnemyMinion:      {R: 160, G: 100, B: 60, A: 255},
	types.EnemyShieldBoss:  {R: 60, G: 140, B: 255, A: 255},
	types.EnemySpawnerBoss: {R: 160, G: 60, B: 200, A: 255},
	types.EnemyArmoredBoss: {R: 140, G: 140, B: 140, A: 255},
	types.EnemyPhaseBoss:   {R: 255, G: 40, B: 120, A: 255},
}

func (a *App) drawMap(screen *ebiten.Image) {
	path := a.loop.Path()
	ts := float32(path.TileSize())
	for row := 0; row < path.Height(); row++ {
		for col := 0; col < path.Width(); col++ {
			clr := colorPath
			if path.IsBuildable(col, row) {
				clr = colorBuildable
			}
			x, y := float32(col)*ts, float32(row)*ts
			vector.DrawFilledRect(screen, x, y, ts, ts, clr, false)
			vector.StrokeRect(screen, x, y, ts, ts, 1, colorGridLine, false)
		}
	}
}

func (a *App) drawTowers(screen *ebiten.Image) {
	ts := float32(a.loop.Path().TileSize())
	showRanges := a.settings.GetSettings().ShowRanges
	for _, t := range a.loop.Towers() {
		clr, ok := towerColors[t.Type]
		if !ok {
			clr = colorText
		}
		x, y := float32(t.X), float32(t.Y)
		vector.DrawFilledRect(screen, x-ts*0.35, y-ts*0.35, ts*0.7, ts*0.7, clr, false)
		if t.Level > 1 {
			vector.StrokeRect(screen, x-ts*0.4, y-ts*0.4, ts*0.8, ts*0.8, 2, colorWarning, false)
		}
		if showRanges || (t.Col == a.hoverCol && t.Row == a.hoverRow) {
			vector.StrokeCircle(screen, x, y, float32(t.Range), 1, colorRange, true)
		}
	}
}

func (a *App) drawEnemies(screen *ebiten.Image) {
	for _, e := range a.loop.Enemies() {
		clr, ok := enemyColors[e.Kind]
		if !ok {
			clr = colorText
		}
		if e.IsCamouflaged && !e.IsDetected {
			clr.A = 90
		}
		x, y, r := float32(e.X), float32(e.Y), float32(e.Size)
		vector.DrawFilledCircle(screen, x, y, r, clr, true)
		if e.IsBoss {
			vector.StrokeCircle(screen, x, y, r+3, 2, colorWarning, true)
		}
		if e.Frozen || e.Slowed {
			vector.StrokeCircle(screen, x, y, r+1, 2, towerColors[types.TowerIce], true)
		}

		// 血条和护盾条
		barW := r * 2
		top := y - r - 8
		vector.DrawFilledRect(screen, x-r, top, barW, 3, colorBarBack, false)
		if e.MaxHealth > 0 {
			ratio := utils.Clamp01(e.Health / e.MaxHealth)
			vector.DrawFilledRect(screen, x-r, top, barW*float32(ratio), 3, healthColor(ratio), false)
		}
		if e.MaxShields > 0 {
			vector.DrawFilledRect(screen, x-r, top-4, barW*float32(e.Shields/e.MaxShields), 2, colorShield, false)
		}
	}
}

func (a *App) drawProjectiles(screen *ebiten.Image) {
	radius := float32(a.loop.Rules().Game.ProjectileRadius)
	for _, p := range a.loop.Projectiles() {
		clr := colorText
		switch {
		case p.Cosmetic:
			clr = towerColors[types.TowerLaser]
		case p.Critical:
			clr = colorWarning
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), radius, clr, true)
	}
}

func (a *App) drawHover(screen *ebiten.Image) {
	if a.hoverCol < 0 {
		return
	}
	ts := float32(a.loop.Path().TileSize())
	clr := color.RGBA{R: 100, G: 255, B: 100, A: 200}
	if !a.loop.CanBuildAt(a.hoverCol, a.hoverRow) {
		clr = color.RGBA{R: 255, G: 100, B: 100, A: 200}
	}
	vector.StrokeRect(screen, float32(a.hoverCol)*ts+1, float32(a.hoverRow)*ts+1, ts-2, ts-2, 2, clr, false)
}

func (a *App) drawHUD(screen *ebiten.Image) {
	state := a.loop.State()
	top := float64(a.screenHeight - hudHeight)

	wave := fmt.Sprintf("Wave %d", state.Wave)
	switch {
	case state.WaveActive:
		wave += fmt.Sprintf(" (%d/%d)", state.EnemiesSpawned, state.EnemiesPerWave)
	case !state.GameOver:
		wave += fmt.Sprintf(" - next in %.1fs", state.TimeToNextWave)
	}
	if state.BossWave {
		wave += " BOSS"
	}

	selected := state.SelectedTowerType
	cost := 0
	if stats, ok := a.loop.Rules().Towers.Stats(selected); ok {
		cost = stats.Cost
	}

	a.drawText(screen, fmt.Sprintf("Lives %d   Money %d   Score %d   Kills %d   %s",
		state.Lives, state.Money, state.Score, state.EnemiesKilled, wave), 8, top+6, colorText)
	a.drawText(screen, fmt.Sprintf("Tower: %s (%d)   Speed x%.1f   [1-0,-,=] select  U upgrade  X sell  N next wave  P pause  R restart  F5/F9 save/load",
		selected, cost, a.settings.GetSettings().GameSpeed), 8, top+22, colorText)

	status := a.message
	statusColor := colorWarning
	if a.messageTimer <= 0 {
		status = ""
	} else {
		// 最后一秒淡出
		statusColor.A = uint8(255 * utils.EaseOutQuad(a.messageTimer))
	}
	switch {
	case state.GameOver:
		status = fmt.Sprintf("GAME OVER - reached wave %d with %d points. Press R to restart.", state.Wave, state.Score)
		statusColor = colorWarning
	case state.Paused:
		status = "PAUSED " + status
		statusColor = colorWarning
	}
	if status != "" {
		a.drawText(screen, status, 8, top+38, statusColor)
	}
}

// healthColor 血量比例从 0 到 1 时由红变绿
func healthColor(ratio float64) color.RGBA {
	return color.RGBA{
		R: uint8(utils.Lerp(float64(colorHurt.R), float64(colorHealth.R), ratio)),
		G: uint8(utils.Lerp(float64(colorHurt.G), float64(colorHealth.G), ratio)),
		B: uint8(utils.Lerp(float64(colorHurt.B), float64(colorHealth.B), ratio)),
		A: 255,
	}
}

func (a *App) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, a.face, op)
}

var _ ebiten.Game = (*App)(nil)
