package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// towerKeys 按建造菜单顺序对应的按键
var towerKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9, ebiten.Key0, ebiten.KeyMinus, ebiten.KeyEqual,
}

// handleInput 把鼠标和键盘映射成模拟命令
//
//	左键/触摸 建造当前选择的塔
//	1-0 - =  选择塔
//	U        升级光标下的塔（第一条路线，按住 Shift 选第二条）
//	X        出售光标下的塔
//	N        立即开始下一波
//	P        暂停/继续
//	R        重新开始
//	Tab      显示所有塔的射程
//	[ ]      调整游戏速度
//	F5 / F9  保存 / 读取
//	F11      全屏
func (a *App) handleInput() {
	path := a.loop.Path()
	pointer := utils.ReadPointer()
	col, row, ok := utils.MouseToGridCoords(pointer.X, pointer.Y, path.Width(), path.Height(), path.TileSize())
	if ok {
		a.hoverCol, a.hoverRow = col, row
	} else {
		a.hoverCol, a.hoverRow = -1, -1
	}

	order := a.loop.Rules().Towers.Order
	for i, key := range towerKeys {
		if i < len(order) && inpututil.IsKeyJustPressed(key) {
			a.loop.SelectTowerType(order[i])
			a.settings.SetLastTowerType(string(order[i]))
		}
	}

	if pointer.JustPressed && a.hoverCol >= 0 {
		if !a.loop.PlaceTower(a.hoverCol, a.hoverRow) {
			a.notify("Cannot build here")
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		a.upgradeHovered(ebiten.IsKeyPressed(ebiten.KeyShift))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		if id, ok := a.loop.TowerAt(a.hoverCol, a.hoverRow); ok {
			a.loop.SellTower(id)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.loop.StartNextWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.loop.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.loop.Restart()
		a.notify("New game")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.settings.SetShowRanges(!a.settings.GetSettings().ShowRanges)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		a.settings.SetGameSpeed(a.settings.GetSettings().GameSpeed / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		a.settings.SetGameSpeed(a.settings.GetSettings().GameSpeed * 2)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.load()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
	}
}

func (a *App) upgradeHovered(second bool) {
	id, ok := a.loop.TowerAt(a.hoverCol, a.hoverRow)
	if !ok {
		return
	}
	upgrades := a.loop.AvailableUpgrades(id)
	idx := 0
	if second {
		idx = 1
	}
	if idx >= len(upgrades) {
		a.notify("No upgrade available")
		return
	}
	if a.loop.UpgradeTower(id, upgrades[idx].ID) {
		a.notify(fmt.Sprintf("Upgraded to %s", upgrades[idx].Name))
	} else {
		a.notify(fmt.Sprintf("%s costs %d", upgrades[idx].Name, upgrades[idx].Cost))
	}
}

func (a *App) save() {
	data, err := a.loop.Snapshot()
	if err == nil {
		err = a.store.Save(data)
	}
	if err != nil {
		log.Printf("[App] Save failed: %v", err)
		a.notify("Save failed")
		return
	}
	a.notify(fmt.Sprintf("Saved wave %d", data.Wave))
}

func (a *App) load() {
	data, err := a.store.Load()
	if err == nil {
		err = a.loop.Restore(data)
	}
	switch {
	case errors.Is(err, game.ErrNoSnapshot):
		a.notify("No saved battle")
	case errors.Is(err, game.ErrIncompatibleSnapshot):
		a.notify("Saved battle is from another version")
	case err != nil:
		log.Printf("[App] Load failed: %v", err)
		a.notify("Load failed")
	default:
		a.notify(fmt.Sprintf("Loaded wave %d (P to continue)", data.Wave))
	}
}
