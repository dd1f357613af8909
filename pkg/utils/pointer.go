package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 当前帧的指针状态
// 统一处理鼠标和触摸，优先使用触摸
type Pointer struct {
	X, Y int
	// JustPressed 左键或触摸刚刚按下
	JustPressed bool
	// IsTouch 是否来自触摸
	IsTouch bool
}

// ReadPointer 读取当前帧的指针状态
func ReadPointer() Pointer {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return Pointer{X: x, Y: y, JustPressed: true, IsTouch: true}
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return Pointer{X: x, Y: y, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return Pointer{
		X:           x,
		Y:           y,
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}
