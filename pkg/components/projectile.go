package components

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
)

// ProjectileComponent 投射物的载荷和目标
type ProjectileComponent struct {
	Source ecs.EntityID // 发射的塔
	Target ecs.EntityID // 弱引用

	Damage float64
	Speed  float64
	Radius float64

	Special types.Special

	// 溅射
	SplashRadius float64 // 格，0 表示无溅射

	// 命中时附加的状态
	StatusKind     types.StatusKind
	StatusDuration float64
	StatusPotency  float64

	// 穿透
	PierceRemaining int
	Pierced         []ecs.EntityID

	// 连锁
	ChainCount   int
	ChainRange   float64 // 像素
	ChainFalloff float64

	Critical bool // 本发是否暴击（仅用于显示）
	Cosmetic bool // 光束的显示用投射物，不参与碰撞

	Active bool
}

// HasPierced 是否已经穿透过该敌人
func (p *ProjectileComponent) HasPierced(id ecs.EntityID) bool {
	for _, hit := range p.Pierced {
		if hit == id {
			return true
		}
	}
	return false
}
