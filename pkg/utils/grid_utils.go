// Package utils 提供通用工具函数
package utils

import "math"

// MouseToGridCoords 将屏幕坐标转换为网格坐标
// 参数:
//   - mouseX, mouseY: 鼠标的屏幕坐标（地图从 (0,0) 开始绘制）
//   - columns, rows: 网格尺寸
//   - tileSize: 每格像素
//
// 返回:
//   - col, row: 网格坐标
//   - isValid: 是否在网格范围内
func MouseToGridCoords(mouseX, mouseY int, columns, rows int, tileSize float64) (col, row int, isValid bool) {
	if mouseX < 0 || mouseY < 0 {
		return 0, 0, false
	}
	col, row = WorldToCell(float64(mouseX), float64(mouseY), tileSize)
	if col >= columns || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

// CellCenter 返回格子中心的世界坐标
func CellCenter(col, row int, tileSize float64) (x, y float64) {
	return float64(col)*tileSize + tileSize/2, float64(row)*tileSize + tileSize/2
}

// WorldToCell 返回世界坐标所在的格子（负坐标向下取整）
func WorldToCell(x, y, tileSize float64) (col, row int) {
	return int(math.Floor(x / tileSize)), int(math.Floor(y / tileSize))
}

// Distance 两点间欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Direction 返回从 (x1,y1) 指向 (x2,y2) 的单位向量和距离
// 两点重合时返回零向量
func Direction(x1, y1, x2, y2 float64) (dx, dy, dist float64) {
	vx, vy := x2-x1, y2-y1
	dist = math.Hypot(vx, vy)
	if dist == 0 {
		return 0, 0, 0
	}
	return vx / dist, vy / dist, dist
}
