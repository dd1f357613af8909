package components

// Ability 周期触发的敌人能力
// 累加器超过 Interval 时触发一次并清零
type Ability struct {
	Active      bool
	Rate        float64 // 每次触发的回复量
	Interval    float64 // 触发间隔（秒）
	Accumulator float64
	Range       float64 // 治疗光环半径（像素）
	MaxMinions  int     // 召唤上限
}

// AbilitiesComponent 敌人的特殊能力
type AbilitiesComponent struct {
	Regeneration Ability // 回复生命
	ShieldRegen  Ability // 回复护盾
	MinionSpawn  Ability // 召唤小兵
	HealAura     Ability // 治疗周围敌人
}
