package systems

import "github.com/gonewx/towerdefense/pkg/components"

// tickAbility 推进能力计时器，累加器达到间隔时触发一次并清零
// 返回本次是否触发
func tickAbility(ability *components.Ability, dt float64, fire func(ability *components.Ability)) bool {
	if !ability.Active || ability.Interval <= 0 {
		return false
	}
	ability.Accumulator += dt
	if ability.Accumulator < ability.Interval {
		return false
	}
	fire(ability)
	ability.Accumulator = 0
	return true
}

// tickDamageOverTime 推进持续伤害计时器，到达间隔时造成一次伤害
// 返回本次是否造成了伤害
func tickDamageOverTime(effect *components.StatusEffect, dt float64, deal func(amount float64)) bool {
	if !effect.Active || effect.Interval <= 0 {
		return false
	}
	effect.Accumulator += dt
	if effect.Accumulator < effect.Interval {
		return false
	}
	amount := effect.Damage
	if effect.Stacks > 0 {
		amount *= float64(effect.Stacks)
	}
	effect.Accumulator = 0
	deal(amount)
	return true
}

// countDown 推进状态时长，到期时清空效果
func countDown(effect *components.StatusEffect, dt float64) {
	if !effect.Active {
		return
	}
	effect.Remaining -= dt
	if effect.Remaining <= 0 {
		*effect = components.StatusEffect{}
	}
}
