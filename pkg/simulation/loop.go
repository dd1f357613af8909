package simulation

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/grid"
	"github.com/gonewx/towerdefense/pkg/systems"
)

// Loop 固定步长的模拟循环
//
// 独占实体集合和 GameState。宿主每帧调用 Advance 传入真实经过的时间，
// Loop 按固定步长 dt 推进零到多步；命令（建塔、升级、出售）在步与步之间执行。
//
// 每步的顺序：
//  1. 波次调度
//  2. 敌人按创建顺序更新，随后结算逃脱和死亡
//  3. 处理延迟生成队列（分裂体、小兵）
//  4. 重置塔的倍率，更新所有塔
//  5. 更新投射物和显示用投射物的寿命
//  6. 移除标记删除的实体
//  7. 生命耗尽则进入游戏结束
type Loop struct {
	rules *config.Rules
	path  *grid.GridPath

	entityManager *ecs.EntityManager
	gameState     *game.GameState
	events        *game.EventBus
	rng           systems.RandomSource
	spawnQueue    *systems.SpawnQueue
	serializer    *game.BattleSerializer

	combat           *systems.Combat
	waveSystem       *systems.WaveSpawnSystem
	enemySystem      *systems.EnemySystem
	towerSystem      *systems.TowerSystem
	projectileSystem *systems.ProjectileSystem
	lifetimeSystem   *systems.LifetimeSystem

	dt          float64
	accumulator float64
	elapsed     float64 // 已模拟的时间（秒）
	steps       uint64

	running bool
	paused  bool
	verbose bool
}

// Option 配置 Loop
type Option func(*Loop)

// WithSeed 使用固定种子的随机数，同一种子和同一命令序列得到相同结果
func WithSeed(seed int64) Option {
	return func(l *Loop) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRandom 使用自定义随机数来源
func WithRandom(rng systems.RandomSource) Option {
	return func(l *Loop) {
		l.rng = rng
	}
}

// WithVerbose 输出每步的详细日志
func WithVerbose(verbose bool) Option {
	return func(l *Loop) {
		l.verbose = verbose
	}
}

// NewLoop 创建模拟循环
//
// 参数：
//   - rules: 静态规则，通常来自 config.DefaultRules 或 config.LoadRules
//   - opts: 可选配置
//
// 返回的 Loop 处于停止状态，调用 Start 后 Advance 才会推进。
func NewLoop(rules *config.Rules, opts ...Option) (*Loop, error) {
	if rules == nil {
		return nil, fmt.Errorf("rules cannot be nil")
	}
	path, err := grid.FromConfig(rules.Map, rules.Game.TileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build path: %w", err)
	}

	l := &Loop{
		rules:         rules,
		path:          path,
		entityManager: ecs.NewEntityManager(),
		gameState:     game.NewGameState(rules.Game.StartingLives, rules.Game.StartingMoney, rules.Game.WaveDelay),
		events:        game.NewEventBus(),
		spawnQueue:    systems.NewSpawnQueue(),
		serializer:    game.NewBattleSerializer(),
		dt:            rules.Game.FixedStep(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(rules.Towers.Order) > 0 {
		l.gameState.SelectedTowerType = rules.Towers.Order[0]
	}

	l.combat = systems.NewCombat(l.entityManager, rules.Enemies, l.gameState, l.events)
	l.waveSystem = systems.NewWaveSpawnSystem(l.entityManager, l.gameState, rules, path, l.events, l.rng)
	l.enemySystem = systems.NewEnemySystem(l.entityManager, l.combat, path, rules.Enemies, l.spawnQueue)
	l.towerSystem = systems.NewTowerSystem(l.entityManager, l.combat, rules, path, l.rng)
	l.projectileSystem = systems.NewProjectileSystem(l.entityManager, l.combat, rules.Game, path)
	l.lifetimeSystem = systems.NewLifetimeSystem(l.entityManager)

	l.waveSystem.SetVerbose(l.verbose)
	l.enemySystem.SetVerbose(l.verbose)
	l.towerSystem.SetVerbose(l.verbose)
	l.projectileSystem.SetVerbose(l.verbose)

	log.Printf("[Loop] Created: run=%s dt=%.4fs map=%dx%d waypoints=%d",
		l.gameState.RunID, l.dt, path.Width(), path.Height(), path.WaypointCount())
	return l, nil
}

// Start 开始运行，已在运行时无效果
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.paused = false
	log.Printf("[Loop] Started run %s", l.gameState.RunID)
}

// Pause 暂停，暂停期间不推进任何模拟时间
func (l *Loop) Pause() {
	if !l.running || l.paused {
		return
	}
	l.paused = true
	log.Printf("[Loop] Paused at %.2fs", l.elapsed)
}

// Resume 从暂停处继续，累积器保持暂停前的内容
func (l *Loop) Resume() {
	if !l.running || !l.paused {
		return
	}
	l.paused = false
	log.Printf("[Loop] Resumed at %.2fs", l.elapsed)
}

// TogglePause 切换暂停状态，未运行时无效果
func (l *Loop) TogglePause() {
	if l.paused {
		l.Resume()
	} else {
		l.Pause()
	}
}

// Restart 丢弃当前局面，以新的 RunID 重新开始并立即运行
func (l *Loop) Restart() {
	l.running = false
	l.paused = false
	l.entityManager.Clear()
	l.spawnQueue.Clear()
	l.gameState.Reset(l.rules.Game.StartingLives, l.rules.Game.StartingMoney, l.rules.Game.WaveDelay)
	l.accumulator = 0
	l.elapsed = 0
	l.steps = 0

	log.Printf("[Loop] Restarted: new run %s", l.gameState.RunID)
	l.publishState()
	l.Start()
}

// IsRunning 是否在运行（包括暂停中）
func (l *Loop) IsRunning() bool { return l.running }

// IsPaused 是否暂停
func (l *Loop) IsPaused() bool { return l.paused }

// IsGameOver 生命是否已耗尽
func (l *Loop) IsGameOver() bool { return l.gameState.GameOver }

// FixedStep 固定步长（秒）
func (l *Loop) FixedStep() float64 { return l.dt }

// Advance 累积一帧经过的真实时间，按固定步长推进，返回本次执行的步数
//
// 单帧时间超过 maxFrameDelta（大于 0 时）会被截断，避免长时间卡顿后的追帧。
// 截断部分的时间直接丢弃，这样的帧里模拟会比真实时间慢；需要严格按真实时间
// 推进时把 maxFrameDelta 设为 0。
// 停止、暂停或游戏结束时不累积。
func (l *Loop) Advance(frameDelta float64) int {
	if !l.running || l.paused || l.gameState.GameOver || frameDelta <= 0 {
		return 0
	}
	if limit := l.rules.Game.MaxFrameDelta; limit > 0 && frameDelta > limit {
		frameDelta = limit
	}

	l.accumulator += frameDelta
	steps := 0
	for l.accumulator >= l.dt {
		l.Step()
		l.accumulator -= l.dt
		steps++
		if l.gameState.GameOver {
			l.accumulator = 0
			break
		}
	}
	return steps
}

// Step 执行一个固定步长
// 不检查运行和暂停状态，供测试和无界面模拟直接驱动
func (l *Loop) Step() {
	gs := l.gameState
	if gs.GameOver {
		return
	}
	dt := l.dt

	l.waveSystem.Update(dt)

	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](l.entityManager) {
		if l.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		l.enemySystem.UpdateEnemy(id, dt)
		l.resolveEnemy(id)
	}
	l.spawnQueue.Drain(l.spawn)

	l.towerSystem.ResetMultipliers()
	l.towerSystem.Update(dt)

	l.projectileSystem.Update(dt)
	l.lifetimeSystem.Update(dt)

	l.entityManager.RemoveMarkedEntities()

	l.elapsed += dt
	l.steps++

	if gs.Lives <= 0 {
		l.gameOver()
	}
}

// resolveEnemy 结算到达终点和死亡，两者都会移除敌人
func (l *Loop) resolveEnemy(id ecs.EntityID) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](l.entityManager, id)
	if !ok {
		return
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](l.entityManager, id)
	gs := l.gameState

	if enemy.PathIndex >= l.path.LastIndex() {
		enemy.Active = false
		enemy.Escaped = true
		lives := gs.LoseLife()
		l.entityManager.DestroyEntity(id)

		if l.verbose {
			log.Printf("[Loop] %s %d escaped, lives=%d", enemy.Kind, id, lives)
		}
		l.events.Publish(game.Event{
			Type:      game.EventEnemyEscaped,
			RunID:     gs.RunID,
			Wave:      gs.Wave,
			Entity:    id,
			EnemyKind: enemy.Kind,
			Amount:    lives,
		})
		l.publishState()
		return
	}

	if enemy.Active || health == nil || health.Health > 0 {
		return
	}

	gs.AddMoney(enemy.Reward)
	gs.Score += enemy.Reward
	gs.EnemiesKilled++
	if enemy.IsBoss {
		gs.BossesKilled++
		log.Printf("[Loop] Boss %s defeated in wave %d", enemy.Kind, gs.Wave)
	}

	if enemy.ShouldSplit {
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.entityManager, id)
		for i := 0; i < enemy.SplitCount; i++ {
			l.spawnQueue.Enqueue(systems.SpawnRequest{
				Kind:      enemy.SplitInto,
				Wave:      enemy.Wave,
				X:         pos.X,
				Y:         pos.Y,
				PathIndex: enemy.PathIndex,
			})
		}
	}
	l.entityManager.DestroyEntity(id)

	if l.verbose {
		log.Printf("[Loop] %s %d killed, reward=%d money=%d", enemy.Kind, id, enemy.Reward, gs.Money)
	}
	l.events.Publish(game.Event{
		Type:      game.EventEnemyKilled,
		RunID:     gs.RunID,
		Wave:      gs.Wave,
		Entity:    id,
		EnemyKind: enemy.Kind,
		Amount:    enemy.Reward,
	})
	l.publishState()
}

// spawn 处理一条延迟生成请求
func (l *Loop) spawn(req systems.SpawnRequest) {
	id, err := entities.NewEnemyEntityAt(l.entityManager, l.rules.Enemies, req.Kind, req.Wave, req.X, req.Y, req.PathIndex)
	if err != nil {
		log.Printf("[Loop] Failed to spawn %s: %v", req.Kind, err)
		return
	}
	if l.verbose {
		log.Printf("[Loop] Spawned %s %d at path index %d", req.Kind, id, req.PathIndex)
	}
}

func (l *Loop) gameOver() {
	gs := l.gameState
	gs.GameOver = true
	l.running = false
	l.paused = false

	log.Printf("[Loop] Game over: wave=%d score=%d kills=%d bosses=%d elapsed=%.1fs",
		gs.Wave, gs.Score, gs.EnemiesKilled, gs.BossesKilled, l.elapsed)
	l.events.Publish(game.Event{
		Type:   game.EventGameOver,
		RunID:  gs.RunID,
		Wave:   gs.Wave,
		Amount: gs.Score,
	})
}

func (l *Loop) publishState() {
	l.events.Publish(game.Event{
		Type:   game.EventStateChanged,
		RunID:  l.gameState.RunID,
		Wave:   l.gameState.Wave,
		Amount: l.gameState.Money,
	})
}
