package systems

import "github.com/gonewx/towerdefense/pkg/types"

// SpawnRequest 延迟生成敌人的请求
// 分裂体和 Boss 召唤的小兵在遍历敌人集合时不能直接创建实体
type SpawnRequest struct {
	Kind      types.EnemyKind
	Wave      int
	X, Y      float64
	PathIndex int
}

// SpawnQueue 延迟生成队列
//
// 敌人遍历过程中只入队，遍历结束后由模拟循环统一 Drain。
type SpawnQueue struct {
	pending []SpawnRequest
}

// NewSpawnQueue 创建空队列
func NewSpawnQueue() *SpawnQueue {
	return &SpawnQueue{pending: make([]SpawnRequest, 0, 8)}
}

// Enqueue 添加请求
func (q *SpawnQueue) Enqueue(req SpawnRequest) {
	q.pending = append(q.pending, req)
}

// Len 待处理请求数量
func (q *SpawnQueue) Len() int {
	return len(q.pending)
}

// CountKind 待处理请求中指定种类的数量
func (q *SpawnQueue) CountKind(kind types.EnemyKind) int {
	count := 0
	for _, req := range q.pending {
		if req.Kind == kind {
			count++
		}
	}
	return count
}

// Drain 按入队顺序处理全部请求并清空队列
// 处理过程中新入队的请求留到下一次 Drain
func (q *SpawnQueue) Drain(fn func(SpawnRequest)) int {
	batch := q.pending
	q.pending = make([]SpawnRequest, 0, cap(batch))
	for _, req := range batch {
		fn(req)
	}
	return len(batch)
}

// Clear 丢弃全部请求
func (q *SpawnQueue) Clear() {
	q.pending = q.pending[:0]
}
