package components

import "github.com/gonewx/towerdefense/pkg/types"

// EnemyComponent 标识实体为敌人
// 存储种类、移动状态和标志位
type EnemyComponent struct {
	Kind   types.EnemyKind
	Wave   int // 生成时的波次
	Reward int // 击杀奖励（金钱和分数）

	Armor     float64 // 伤害减免 0~1
	BaseSpeed float64 // 基础速度（格/秒）
	Speed     float64 // 当前有效速度（格/秒）
	Size      float64 // 碰撞半径（像素）

	// PathIndex 最近到达的路径点索引
	PathIndex int

	IsFlying      bool
	IsCamouflaged bool
	IsDetected    bool // 被雷达塔显形
	IsBoss        bool

	// Active 死亡或移除后为 false
	Active bool
	// Escaped 到达终点
	Escaped bool

	// 阶段 Boss
	Phase                int
	MaxPhases            int
	PhaseSpeedMultiplier float64

	// SlowResistance 减速/冰冻的强度和时长按 (1 - SlowResistance) 缩减
	SlowResistance float64

	// 分裂
	SplitInto   types.EnemyKind
	SplitCount  int
	ShouldSplit bool // 死亡后由模拟循环生成分裂体
}
