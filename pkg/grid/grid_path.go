// Package grid 地图网格与敌人路径
package grid

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// TileKind 格子类型
type TileKind uint8

const (
	TileBuildable TileKind = iota // 可建造
	TilePath                      // 路径
)

// Cell 网格坐标
type Cell struct {
	Col, Row int
}

// GridPath 不可变的地图网格 + 有序路径点
//
// 路径点所在的格子都是路径格，其余格子可建造。
// 塔的占用情况由模拟循环维护，不记录在这里。
type GridPath struct {
	width, height int
	tileSize      float64
	tiles         [][]TileKind // [row][col]
	waypoints     []Cell
}

// NewGridPath 创建地图
// 路径点至少 2 个且都在地图范围内
func NewGridPath(width, height int, tileSize float64, waypoints []Cell) (*GridPath, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %dx%d", width, height)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %v", tileSize)
	}
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("at least 2 waypoints are required, got %d", len(waypoints))
	}

	tiles := make([][]TileKind, height)
	for row := range tiles {
		tiles[row] = make([]TileKind, width)
	}

	wps := make([]Cell, len(waypoints))
	for i, wp := range waypoints {
		if wp.Col < 0 || wp.Col >= width || wp.Row < 0 || wp.Row >= height {
			return nil, fmt.Errorf("waypoint %d (%d, %d) is out of bounds", i, wp.Col, wp.Row)
		}
		tiles[wp.Row][wp.Col] = TilePath
		wps[i] = wp
	}

	return &GridPath{
		width:     width,
		height:    height,
		tileSize:  tileSize,
		tiles:     tiles,
		waypoints: wps,
	}, nil
}

// FromConfig 根据 map.yaml 创建地图
func FromConfig(m *config.MapConfig, tileSize float64) (*GridPath, error) {
	if m == nil {
		return nil, fmt.Errorf("map config cannot be nil")
	}
	waypoints := make([]Cell, 0, len(m.Waypoints))
	for i, wp := range m.Waypoints {
		if len(wp) != 2 {
			return nil, fmt.Errorf("waypoint %d must be [col, row], got %v", i, wp)
		}
		waypoints = append(waypoints, Cell{Col: wp[0], Row: wp[1]})
	}
	return NewGridPath(m.Width, m.Height, tileSize, waypoints)
}

// Width 列数
func (g *GridPath) Width() int { return g.width }

// Height 行数
func (g *GridPath) Height() int { return g.height }

// TileSize 每格像素
func (g *GridPath) TileSize() float64 { return g.tileSize }

// InBounds 格子是否在地图内
func (g *GridPath) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// TileAt 返回格子类型，越界视为路径（不可建造）
func (g *GridPath) TileAt(col, row int) TileKind {
	if !g.InBounds(col, row) {
		return TilePath
	}
	return g.tiles[row][col]
}

// IsBuildable 格子是否可建造（不考虑塔占用）
func (g *GridPath) IsBuildable(col, row int) bool {
	return g.InBounds(col, row) && g.tiles[row][col] == TileBuildable
}

// WaypointCount 路径点数量
func (g *GridPath) WaypointCount() int { return len(g.waypoints) }

// LastIndex 终点的路径索引
func (g *GridPath) LastIndex() int { return len(g.waypoints) - 1 }

// Waypoint 返回第 i 个路径点
func (g *GridPath) Waypoint(i int) Cell { return g.waypoints[i] }

// Waypoints 返回路径点副本
func (g *GridPath) Waypoints() []Cell {
	out := make([]Cell, len(g.waypoints))
	copy(out, g.waypoints)
	return out
}

// CellCenter 格子中心的世界坐标
func (g *GridPath) CellCenter(col, row int) (x, y float64) {
	return utils.CellCenter(col, row, g.tileSize)
}

// WaypointCenter 第 i 个路径点中心的世界坐标
func (g *GridPath) WaypointCenter(i int) (x, y float64) {
	wp := g.waypoints[i]
	return g.CellCenter(wp.Col, wp.Row)
}

// WorldToCell 世界坐标所在的格子
func (g *GridPath) WorldToCell(x, y float64) Cell {
	col, row := utils.WorldToCell(x, y, g.tileSize)
	return Cell{Col: col, Row: row}
}

// WorldBounds 地图的世界坐标范围
func (g *GridPath) WorldBounds() (width, height float64) {
	return float64(g.width) * g.tileSize, float64(g.height) * g.tileSize
}

// PredictPosition 沿路径向前推进 distance 像素后的位置
//
// 从 (x, y) 出发，下一个目标是 pathIndex+1，经过路径点时顺延到下一段。
// 到达终点后停在终点。
func (g *GridPath) PredictPosition(x, y float64, pathIndex int, distance float64) (px, py float64) {
	remaining := distance
	idx := pathIndex
	px, py = x, y
	for remaining > 0 && idx < g.LastIndex() {
		tx, ty := g.WaypointCenter(idx + 1)
		seg := utils.Distance(px, py, tx, ty)
		if remaining >= seg {
			px, py = tx, ty
			remaining -= seg
			idx++
			continue
		}
		ratio := remaining / seg
		px += (tx - px) * ratio
		py += (ty - py) * ratio
		remaining = 0
	}
	return px, py
}
