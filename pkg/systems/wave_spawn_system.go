package systems

import (
	"log"

	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/types"
)

// WaveSpawnSystem 波次调度
//
// 两个状态：
//   - 间隔（WaveActive=false）：WaveTimer 累计到 WaveDelay 后开始下一波
//   - 出怪（WaveActive=true）：SpawnTimer 每累计到 SpawnDelay 生成一个敌人，
//     达到本波数量后回到间隔状态并重置计时器
//
// 架构说明：
//   - 状态全部保存在 GameState 中，存档恢复后可以直接继续
//   - 出怪种类由 waves.yaml 决定，随机数通过 RandomSource 注入
type WaveSpawnSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	rules         *config.Rules
	path          *grid.GridPath
	events        *game.EventBus
	rng           RandomSource

	verbose bool
}

// NewWaveSpawnSystem 创建波次调度系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 游戏状态
//   - rules: 规则（波次表和敌人属性）
//   - path: 地图路径，敌人在起点生成
//   - events: 事件总线，可为 nil
//   - rng: 随机数来源
func NewWaveSpawnSystem(em *ecs.EntityManager, gs *game.GameState, rules *config.Rules, path *grid.GridPath, events *game.EventBus, rng RandomSource) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		entityManager: em,
		gameState:     gs,
		rules:         rules,
		path:          path,
		events:        events,
		rng:           rng,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *WaveSpawnSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 推进波次计时
func (s *WaveSpawnSystem) Update(dt float64) {
	gs := s.gameState
	if gs.GameOver {
		return
	}

	if !gs.WaveActive {
		gs.WaveTimer += dt
		if gs.WaveTimer >= gs.WaveDelay {
			s.StartWave()
		}
		return
	}

	gs.SpawnTimer += dt
	if gs.SpawnTimer < gs.SpawnDelay || gs.EnemiesSpawned >= gs.EnemiesPerWave {
		return
	}

	kind := s.NextKind()
	if _, err := entities.NewEnemyEntity(s.entityManager, s.rules.Enemies, s.path, kind, gs.Wave); err != nil {
		log.Printf("[WaveSpawnSystem] Failed to spawn %s: %v", kind, err)
	} else if s.verbose {
		log.Printf("[WaveSpawnSystem] Wave %d: spawned %s (%d/%d)", gs.Wave, kind, gs.EnemiesSpawned+1, gs.EnemiesPerWave)
	}
	gs.SpawnTimer = 0
	gs.EnemiesSpawned++

	if gs.EnemiesSpawned >= gs.EnemiesPerWave {
		s.completeWave()
	}
}

// StartWave 立即开始下一波
func (s *WaveSpawnSystem) StartWave() {
	gs := s.gameState
	waves := s.rules.Waves

	gs.Wave++
	gs.WaveActive = true
	gs.WaveTimer = 0
	gs.SpawnTimer = 0
	gs.EnemiesPerWave = waves.Quota(gs.Wave)
	gs.SpawnDelay = waves.SpawnDelay(gs.Wave)
	gs.EnemiesSpawned = 0

	log.Printf("[WaveSpawnSystem] Wave %d started: quota=%d cadence=%.2fs boss=%v",
		gs.Wave, gs.EnemiesPerWave, gs.SpawnDelay, waves.IsBossWave(gs.Wave))
	s.events.Publish(game.Event{
		Type:   game.EventWaveStarted,
		RunID:  gs.RunID,
		Wave:   gs.Wave,
		Amount: gs.EnemiesPerWave,
	})
}

// NextKind 下一个要生成的敌人种类
// Boss 波的第一个固定是 Boss，其余从特殊敌人名单中均匀抽取；普通波按波段概率表抽取
func (s *WaveSpawnSystem) NextKind() types.EnemyKind {
	gs := s.gameState
	waves := s.rules.Waves
	if waves.IsBossWave(gs.Wave) {
		if gs.EnemiesSpawned == 0 {
			return waves.BossKind(gs.Wave)
		}
		return waves.BossWaveKind(s.rng.Float64())
	}
	return waves.RegularKind(gs.Wave, s.rng.Float64())
}

func (s *WaveSpawnSystem) completeWave() {
	gs := s.gameState
	gs.WaveActive = false
	gs.WaveTimer = 0
	gs.SpawnTimer = 0

	log.Printf("[WaveSpawnSystem] Wave %d completed: %d enemies spawned", gs.Wave, gs.EnemiesSpawned)
	s.events.Publish(game.Event{
		Type:   game.EventWaveCompleted,
		RunID:  gs.RunID,
		Wave:   gs.Wave,
		Amount: gs.EnemiesSpawned,
	})
}
