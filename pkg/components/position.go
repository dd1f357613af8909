package components

// PositionComponent 实体在世界坐标中的位置（像素）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/秒）
// 投射物在创建时计算一次，重新索敌时重新计算
type VelocityComponent struct {
	VX float64
	VY float64
}
