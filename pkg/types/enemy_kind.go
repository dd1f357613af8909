// Package types 定义共享的基础类型
package types

// EnemyKind 敌人种类标签，同时也是 enemies.yaml 中的键
type EnemyKind string

const (
	EnemyBasic     EnemyKind = "basic"      // 普通
	EnemyFast      EnemyKind = "fast"       // 快速
	EnemyTank      EnemyKind = "tank"       // 重装
	EnemyFlying    EnemyKind = "flying"     // 飞行
	EnemyCamo      EnemyKind = "camo"       // 隐形，需要雷达塔显形
	EnemySplit     EnemyKind = "split"      // 死亡后分裂
	EnemySplitMini EnemyKind = "split-mini" // 分裂产物
	EnemyHealer    EnemyKind = "healer"     // 治疗周围敌人
	EnemySwarm     EnemyKind = "swarm"      // 蜂群
	EnemyMinion    EnemyKind = "minion"     // Boss 召唤的小兵

	// Boss
	EnemyShieldBoss  EnemyKind = "shield-boss"  // 护盾再生
	EnemySpawnerBoss EnemyKind = "spawner-boss" // 召唤小兵
	EnemyArmoredBoss EnemyKind = "armored-boss" // 高护甲，减速抗性
	EnemyPhaseBoss   EnemyKind = "phase-boss"   // 按血量切换阶段
)

// AllEnemyKinds 所有敌人种类，按上面的声明顺序
func AllEnemyKinds() []EnemyKind {
	return []EnemyKind{
		EnemyBasic, EnemyFast, EnemyTank, EnemyFlying, EnemyCamo,
		EnemySplit, EnemySplitMini, EnemyHealer, EnemySwarm, EnemyMinion,
		EnemyShieldBoss, EnemySpawnerBoss, EnemyArmoredBoss, EnemyPhaseBoss,
	}
}

// StatusKind 状态效果种类
type StatusKind string

const (
	StatusNone   StatusKind = ""
	StatusBurn   StatusKind = "burn"
	StatusFreeze StatusKind = "freeze"
	StatusPoison StatusKind = "poison"
	StatusSlow   StatusKind = "slow"
	StatusStun   StatusKind = "stun"
)

// DamageType 伤害类型
// 只有 DamageTrue 无视护甲
type DamageType string

const (
	DamageNormal DamageType = "normal"
	DamageTrue   DamageType = "true"
	DamageBurn   DamageType = "burn"
	DamagePoison DamageType = "poison"
)
