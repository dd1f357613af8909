package types

// TowerType 塔类型，同时也是 towers.yaml 中的键
type TowerType string

const (
	// 基础塔（可升级）
	TowerBasic  TowerType = "basic"
	TowerSniper TowerType = "sniper"
	TowerCannon TowerType = "cannon"
	TowerLaser  TowerType = "laser"

	// 元素塔
	TowerFire      TowerType = "fire"
	TowerIce       TowerType = "ice"
	TowerPoison    TowerType = "poison"
	TowerLightning TowerType = "lightning"

	// 辅助塔（不开火，只提供光环）
	TowerAmplifier TowerType = "amplifier"
	TowerRadar     TowerType = "radar"
	TowerSlowField TowerType = "slowField"
)

// Special 塔或投射物携带的特殊能力标签
type Special string

const (
	SpecialNone       Special = ""
	SpecialPierce     Special = "pierce"
	SpecialCritical   Special = "critical"
	SpecialChain      Special = "chain"
	SpecialBeam       Special = "beam"
	SpecialSplash     Special = "splash"
	SpecialBurn       Special = "burn"
	SpecialFreeze     Special = "freeze"
	SpecialPoison     Special = "poison"
	SpecialSlow       Special = "slow"
	SpecialStun       Special = "stun"
	SpecialDamageAura Special = "damageAura"
	SpecialRangeAura  Special = "rangeAura"
	SpecialSlowAura   Special = "slowAura"
)

// IsAura 是否为辅助塔光环
func (s Special) IsAura() bool {
	return s == SpecialDamageAura || s == SpecialRangeAura || s == SpecialSlowAura
}

// StatusKind 返回该能力命中时附加的状态效果，没有则返回 StatusNone
func (s Special) StatusKind() StatusKind {
	switch s {
	case SpecialBurn:
		return StatusBurn
	case SpecialFreeze:
		return StatusFreeze
	case SpecialPoison:
		return StatusPoison
	case SpecialSlow:
		return StatusSlow
	case SpecialStun:
		return StatusStun
	}
	return StatusNone
}

// UpgradeType 升级路线标识，空字符串表示未升级
type UpgradeType string

const (
	UpgradeNone      UpgradeType = ""
	UpgradeGuard     UpgradeType = "guard"
	UpgradeRapid     UpgradeType = "rapid"
	UpgradeRailgun   UpgradeType = "railgun"
	UpgradeAssassin  UpgradeType = "assassin"
	UpgradeArtillery UpgradeType = "artillery"
	UpgradeMortar    UpgradeType = "mortar"
	UpgradePlasma    UpgradeType = "plasma"
	UpgradeIon       UpgradeType = "ion"
)
