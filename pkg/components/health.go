package components

// HealthComponent 存储敌人的生命值和护盾
//
// 不变式：0 <= Shields <= MaxShields，Health <= MaxHealth。
// 受到的伤害先由护盾吸收，剩余部分才扣除生命值。
type HealthComponent struct {
	Health     float64 // 当前生命值
	MaxHealth  float64 // 最大生命值
	Shields    float64 // 当前护盾
	MaxShields float64 // 最大护盾
}
