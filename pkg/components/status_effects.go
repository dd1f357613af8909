package components

import "github.com/gonewx/towerdefense/pkg/types"

// MaxPoisonStacks 中毒叠加层数上限
const MaxPoisonStacks = 5

// StatusEffect 单个状态效果的计时器
type StatusEffect struct {
	Active    bool
	Remaining float64 // 剩余时长（秒）
	Magnitude float64 // 冰冻/减速的速度削减比例

	// 持续伤害（燃烧、中毒）
	Damage      float64 // 每跳伤害（中毒为单层伤害）
	Interval    float64 // 伤害间隔
	Accumulator float64

	Stacks int // 仅中毒使用
}

// StatusEffectsComponent 敌人身上的全部状态效果
// 每种效果独立计时
type StatusEffectsComponent struct {
	Burn   StatusEffect
	Freeze StatusEffect
	Poison StatusEffect
	Slow   StatusEffect
	Stun   StatusEffect
}

// Effect 按种类返回对应的状态效果，未知种类返回 nil
func (c *StatusEffectsComponent) Effect(kind types.StatusKind) *StatusEffect {
	switch kind {
	case types.StatusBurn:
		return &c.Burn
	case types.StatusFreeze:
		return &c.Freeze
	case types.StatusPoison:
		return &c.Poison
	case types.StatusSlow:
		return &c.Slow
	case types.StatusStun:
		return &c.Stun
	}
	return nil
}
