package game

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
)

var (
	// ErrNoSnapshot 没有可用的存档
	ErrNoSnapshot = errors.New("no saved battle")
	// ErrIncompatibleSnapshot 存档版本不兼容
	ErrIncompatibleSnapshot = errors.New("incompatible save version")
)

// BattleSerializer 战斗状态序列化器
//
// 负责从 EntityManager 和 GameState 收集存档数据、把存档数据恢复成实体，
// 以及 gob 二进制格式的编解码。
//
// 架构说明：
//   - 这是一个工具类，不是 ECS 系统
//   - 存档格式对模拟核心是不透明的，只有这里知道字段布局
type BattleSerializer struct{}

// NewBattleSerializer 创建战斗序列化器实例
func NewBattleSerializer() *BattleSerializer {
	return &BattleSerializer{}
}

// Collect 从 EntityManager 和 GameState 收集存档数据
func (s *BattleSerializer) Collect(em *ecs.EntityManager, gs *GameState) (*BattleSaveData, error) {
	if em == nil {
		return nil, fmt.Errorf("EntityManager is nil")
	}
	if gs == nil {
		return nil, fmt.Errorf("GameState is nil")
	}

	saveData := NewBattleSaveData()
	s.collectGameState(gs, saveData)
	saveData.Enemies = s.collectEnemyData(em)
	saveData.Towers = s.collectTowerData(em)
	saveData.Projectiles = s.collectProjectileData(em)
	return saveData, nil
}

// Encode 将存档数据以 gob 格式写入 w
func (s *BattleSerializer) Encode(w io.Writer, saveData *BattleSaveData) error {
	if saveData == nil {
		return fmt.Errorf("save data is nil")
	}
	if err := gob.NewEncoder(w).Encode(saveData); err != nil {
		return fmt.Errorf("failed to encode save data: %w", err)
	}
	return nil
}

// Decode 从 r 读取 gob 格式的存档数据并检查版本
func (s *BattleSerializer) Decode(r io.Reader) (*BattleSaveData, error) {
	var saveData BattleSaveData
	if err := gob.NewDecoder(r).Decode(&saveData); err != nil {
		return nil, fmt.Errorf("failed to decode save data: %w", err)
	}

	// 版本兼容性检查
	if saveData.Version != BattleSaveVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)",
			ErrIncompatibleSnapshot, saveData.Version, BattleSaveVersion)
	}
	return &saveData, nil
}

// SaveBattle 保存战斗状态到文件
func (s *BattleSerializer) SaveBattle(em *ecs.EntityManager, gs *GameState, filePath string) error {
	saveData, err := s.Collect(em, gs)
	if err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create save file: %w", err)
	}
	defer file.Close()

	if err := s.Encode(file, saveData); err != nil {
		return err
	}

	log.Printf("[BattleSerializer] Saved battle to %s: Wave=%d, Lives=%d, Money=%d, Enemies=%d, Towers=%d",
		filePath, saveData.Wave, saveData.Lives, saveData.Money, len(saveData.Enemies), len(saveData.Towers))
	return nil
}

// LoadBattle 从文件加载战斗状态
// 文件不存在时返回的错误包装 ErrNoSnapshot
func (s *BattleSerializer) LoadBattle(filePath string) (*BattleSaveData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, filePath)
		}
		return nil, fmt.Errorf("failed to open save file: %w", err)
	}
	defer file.Close()

	saveData, err := s.Decode(file)
	if err != nil {
		return nil, err
	}

	log.Printf("[BattleSerializer] Loaded battle from %s: Wave=%d, Lives=%d, Money=%d, Enemies=%d, Towers=%d",
		filePath, saveData.Wave, saveData.Lives, saveData.Money, len(saveData.Enemies), len(saveData.Towers))
	return saveData, nil
}

// Restore 清空 EntityManager 并按存档数据重建状态
//
// 实体按保存时的顺序重新创建，因此恢复后的遍历顺序与保存时一致。
// 塔和投射物的目标引用会映射到新 ID，找不到的引用置为无效。
func (s *BattleSerializer) Restore(em *ecs.EntityManager, gs *GameState, saveData *BattleSaveData) error {
	if em == nil || gs == nil {
		return fmt.Errorf("EntityManager and GameState are required")
	}
	if saveData == nil {
		return fmt.Errorf("save data is nil")
	}
	if saveData.Version != BattleSaveVersion {
		return fmt.Errorf("%w: %d (expected %d)", ErrIncompatibleSnapshot, saveData.Version, BattleSaveVersion)
	}

	em.Clear()
	s.restoreGameState(gs, saveData)

	idMap := make(map[uint64]ecs.EntityID, len(saveData.Enemies))
	remap := func(old ecs.EntityID) ecs.EntityID {
		if id, ok := idMap[uint64(old)]; ok {
			return id
		}
		return ecs.InvalidEntity
	}

	for _, data := range saveData.Enemies {
		id := em.CreateEntity()
		idMap[data.ID] = id

		enemy := data.Enemy
		health := data.Health
		status := data.Status
		abilities := data.Abilities
		em.AddComponent(id, &components.PositionComponent{X: data.X, Y: data.Y})
		em.AddComponent(id, &enemy)
		em.AddComponent(id, &health)
		em.AddComponent(id, &status)
		em.AddComponent(id, &abilities)
	}

	for _, data := range saveData.Towers {
		id := em.CreateEntity()
		idMap[data.ID] = id

		tower := data.Tower
		tower.Target = remap(tower.Target)
		em.AddComponent(id, &components.PositionComponent{X: data.X, Y: data.Y})
		em.AddComponent(id, &tower)
	}

	for _, data := range saveData.Projectiles {
		id := em.CreateEntity()

		proj := data.Projectile
		proj.Target = remap(proj.Target)
		proj.Source = remap(proj.Source)
		pierced := make([]ecs.EntityID, 0, len(proj.Pierced))
		for _, old := range proj.Pierced {
			if newID := remap(old); newID != ecs.InvalidEntity {
				pierced = append(pierced, newID)
			}
		}
		proj.Pierced = pierced

		em.AddComponent(id, &components.PositionComponent{X: data.X, Y: data.Y})
		em.AddComponent(id, &components.VelocityComponent{VX: data.VX, VY: data.VY})
		em.AddComponent(id, &proj)
		if data.Lifetime != nil {
			lifetime := *data.Lifetime
			em.AddComponent(id, &lifetime)
		}
	}

	log.Printf("[BattleSerializer] Restored battle: Wave=%d, Enemies=%d, Towers=%d, Projectiles=%d",
		saveData.Wave, len(saveData.Enemies), len(saveData.Towers), len(saveData.Projectiles))
	return nil
}

// collectGameState 从 GameState 收集全局状态
func (s *BattleSerializer) collectGameState(gs *GameState, saveData *BattleSaveData) {
	saveData.SaveTime = time.Now()
	saveData.RunID = gs.RunID
	saveData.Lives = gs.Lives
	saveData.Money = gs.Money
	saveData.Score = gs.Score
	saveData.Wave = gs.Wave
	saveData.WaveActive = gs.WaveActive
	saveData.WaveTimer = gs.WaveTimer
	saveData.WaveDelay = gs.WaveDelay
	saveData.SpawnTimer = gs.SpawnTimer
	saveData.SpawnDelay = gs.SpawnDelay
	saveData.EnemiesPerWave = gs.EnemiesPerWave
	saveData.EnemiesSpawned = gs.EnemiesSpawned
	saveData.EnemiesKilled = gs.EnemiesKilled
	saveData.BossesKilled = gs.BossesKilled
	saveData.TowersBuilt = gs.TowersBuilt
	saveData.SelectedTowerType = string(gs.SelectedTowerType)
}

// restoreGameState 把存档中的全局状态写回 GameState
func (s *BattleSerializer) restoreGameState(gs *GameState, saveData *BattleSaveData) {
	*gs = GameState{
		RunID:             saveData.RunID,
		Lives:             saveData.Lives,
		Money:             saveData.Money,
		Score:             saveData.Score,
		Wave:              saveData.Wave,
		WaveActive:        saveData.WaveActive,
		WaveTimer:         saveData.WaveTimer,
		WaveDelay:         saveData.WaveDelay,
		SpawnTimer:        saveData.SpawnTimer,
		SpawnDelay:        saveData.SpawnDelay,
		EnemiesPerWave:    saveData.EnemiesPerWave,
		EnemiesSpawned:    saveData.EnemiesSpawned,
		EnemiesKilled:     saveData.EnemiesKilled,
		BossesKilled:      saveData.BossesKilled,
		TowersBuilt:       saveData.TowersBuilt,
		SelectedTowerType: types.TowerType(saveData.SelectedTowerType),
		GameOver:          saveData.Lives <= 0,
	}
}

// collectEnemyData 从 EntityManager 收集所有仍然存活的敌人
func (s *BattleSerializer) collectEnemyData(em *ecs.EntityManager) []EnemyData {
	enemies := []EnemyData{}

	entities := ecs.GetEntitiesWith2[
		*components.EnemyComponent,
		*components.PositionComponent,
	](em)

	for _, entity := range entities {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, entity)
		if !enemy.Active || em.IsMarkedForDestruction(entity) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, entity)

		data := EnemyData{
			ID:    uint64(entity),
			X:     pos.X,
			Y:     pos.Y,
			Enemy: *enemy,
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](em, entity); ok {
			data.Health = *health
		}
		if status, ok := ecs.GetComponent[*components.StatusEffectsComponent](em, entity); ok {
			data.Status = *status
		}
		if abilities, ok := ecs.GetComponent[*components.AbilitiesComponent](em, entity); ok {
			data.Abilities = *abilities
		}
		enemies = append(enemies, data)
	}

	return enemies
}

// collectTowerData 从 EntityManager 收集所有塔
func (s *BattleSerializer) collectTowerData(em *ecs.EntityManager) []TowerData {
	towers := []TowerData{}

	entities := ecs.GetEntitiesWith2[
		*components.TowerComponent,
		*components.PositionComponent,
	](em)

	for _, entity := range entities {
		if em.IsMarkedForDestruction(entity) {
			continue
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](em, entity)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, entity)
		towers = append(towers, TowerData{
			ID:    uint64(entity),
			X:     pos.X,
			Y:     pos.Y,
			Tower: *tower,
		})
	}

	return towers
}

// collectProjectileData 从 EntityManager 收集所有飞行中的投射物
func (s *BattleSerializer) collectProjectileData(em *ecs.EntityManager) []ProjectileData {
	projectiles := []ProjectileData{}

	entities := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](em)

	for _, entity := range entities {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, entity)
		if !proj.Active || em.IsMarkedForDestruction(entity) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, entity)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, entity)

		data := ProjectileData{
			ID:         uint64(entity),
			X:          pos.X,
			Y:          pos.Y,
			VX:         vel.VX,
			VY:         vel.VY,
			Projectile: *proj,
		}
		data.Projectile.Pierced = append([]ecs.EntityID(nil), proj.Pierced...)
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, entity); ok {
			copied := *lifetime
			data.Lifetime = &copied
		}
		projectiles = append(projectiles, data)
	}

	return projectiles
}
