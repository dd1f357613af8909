package game

import (
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/google/uuid"
)

// GameState 一局游戏的全局状态
// 由模拟循环独占，外部通过只读视图访问
type GameState struct {
	// RunID 本局的唯一标识，重新开始时重新生成
	RunID string

	Lives int
	Money int
	Score int

	// 波次
	Wave           int
	WaveActive     bool    // true: 正在出怪；false: 波次间隔
	WaveTimer      float64 // 间隔已过时间
	WaveDelay      float64 // 间隔时长
	SpawnTimer     float64 // 距上次出怪的时间
	SpawnDelay     float64 // 本波出怪间隔
	EnemiesPerWave int     // 本波敌人总数
	EnemiesSpawned int     // 本波已出怪数量

	// 统计
	EnemiesKilled int
	BossesKilled  int
	TowersBuilt   int

	SelectedTowerType types.TowerType

	GameOver bool
}

// NewGameState 创建新一局的状态
func NewGameState(lives, money int, waveDelay float64) *GameState {
	gs := &GameState{}
	gs.Reset(lives, money, waveDelay)
	return gs
}

// Reset 重置为新一局，保留当前选择的塔类型
func (gs *GameState) Reset(lives, money int, waveDelay float64) {
	selected := gs.SelectedTowerType
	*gs = GameState{
		RunID:             uuid.NewString(),
		Lives:             lives,
		Money:             money,
		WaveDelay:         waveDelay,
		SelectedTowerType: selected,
	}
}

// SpendMoney 扣除金钱，不足时返回 false 且不修改状态
func (gs *GameState) SpendMoney(amount int) bool {
	if amount < 0 || gs.Money < amount {
		return false
	}
	gs.Money -= amount
	return true
}

// AddMoney 增加金钱
func (gs *GameState) AddMoney(amount int) {
	gs.Money += amount
}

// LoseLife 扣除一条生命，返回剩余生命
func (gs *GameState) LoseLife() int {
	gs.Lives--
	return gs.Lives
}

// TimeToNextWave 距下一波开始的秒数，出怪中返回 0
func (gs *GameState) TimeToNextWave() float64 {
	if gs.WaveActive {
		return 0
	}
	remaining := gs.WaveDelay - gs.WaveTimer
	if remaining < 0 {
		return 0
	}
	return remaining
}
