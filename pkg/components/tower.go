package components

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
)

// TowerComponent 标识实体为塔
//
// 塔的位置固定在网格上，世界坐标由 PositionComponent 给出（格子中心）。
// Target 是对敌人的弱引用，每次使用前都要重新校验。
type TowerComponent struct {
	Type types.TowerType
	Name string
	Col  int
	Row  int

	// 战斗属性
	Range           float64 // 格
	Damage          float64
	FireRate        float64 // 每秒发射次数
	ProjectileSpeed float64 // 像素/秒
	Special         types.Special
	SplashRadius    float64 // 格
	StatusDuration  float64
	StatusPotency   float64
	AuraStrength    float64

	// 经济
	Cost        int
	UpgradeCost int
	SellValue   int

	// 运行时状态
	LastShotElapsed float64
	Target          ecs.EntityID
	ChainCooldown   float64 // 连锁攻击剩余冷却
	ShotsFired      int

	// 升级
	Level       int
	UpgradeType types.UpgradeType
	Upgraded    bool

	// 光环倍率，每步开始时重置为 1
	DamageMultiplier   float64
	RangeMultiplier    float64
	FireRateMultiplier float64
}
