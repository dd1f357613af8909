package simulation

import (
	"fmt"
	"log"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
)

// Snapshot 收集当前局面的存档数据
// 应在两步之间调用。已死亡但尚未结算的敌人先结算（奖励、击杀数、分裂体），
// 再收集，因此存档中只有存活的敌人。
func (l *Loop) Snapshot() (*game.BattleSaveData, error) {
	l.settleDeadEnemies()
	data, err := l.serializer.Collect(l.entityManager, l.gameState)
	if err != nil {
		return nil, fmt.Errorf("failed to collect snapshot: %w", err)
	}
	return data, nil
}

// settleDeadEnemies 结算上一步中被塔或投射物击杀、尚未发放奖励的敌人
// 与下一步敌人阶段的结算相同
func (l *Loop) settleDeadEnemies() {
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](l.entityManager) {
		if l.entityManager.IsMarkedForDestruction(id) {
			continue
		}
		if enemy, _ := ecs.GetComponent[*components.EnemyComponent](l.entityManager, id); enemy.Active {
			continue
		}
		l.resolveEnemy(id)
	}
	l.spawnQueue.Drain(l.spawn)
	l.entityManager.RemoveMarkedEntities()

	if l.gameState.Lives <= 0 && !l.gameState.GameOver {
		l.gameOver()
	}
}

// Restore 用存档替换当前局面
//
// 恢复后 Loop 处于暂停状态，由调用方决定何时继续。
// 存档版本不兼容时返回的错误可以用 errors.Is(err, game.ErrIncompatibleSnapshot) 判断，
// 此时当前局面保持不变。
func (l *Loop) Restore(data *game.BattleSaveData) error {
	if data == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if data.Version != game.BattleSaveVersion {
		return fmt.Errorf("failed to restore snapshot: %w: %d (expected %d)",
			game.ErrIncompatibleSnapshot, data.Version, game.BattleSaveVersion)
	}

	l.spawnQueue.Clear()
	if err := l.serializer.Restore(l.entityManager, l.gameState, data); err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	l.accumulator = 0
	l.running = !l.gameState.GameOver
	l.paused = l.running

	log.Printf("[Loop] Restored run %s at wave %d", l.gameState.RunID, l.gameState.Wave)
	l.publishState()
	return nil
}
