package systems

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/types"
)

func TestSpawnQueue_DrainInOrder(t *testing.T) {
	q := NewSpawnQueue()
	q.Enqueue(SpawnRequest{Kind: types.EnemySplitMini, Wave: 3})
	q.Enqueue(SpawnRequest{Kind: types.EnemyMinion, Wave: 3})
	q.Enqueue(SpawnRequest{Kind: types.EnemySplitMini, Wave: 3})

	if q.Len() != 3 {
		t.Fatalf("Expected 3 pending requests, got %d", q.Len())
	}
	if got := q.CountKind(types.EnemySplitMini); got != 2 {
		t.Errorf("Expected 2 split-mini requests, got %d", got)
	}

	var order []types.EnemyKind
	n := q.Drain(func(req SpawnRequest) {
		order = append(order, req.Kind)
	})

	if n != 3 || q.Len() != 0 {
		t.Errorf("Expected 3 drained and empty queue, got %d drained and %d pending", n, q.Len())
	}
	expected := []types.EnemyKind{types.EnemySplitMini, types.EnemyMinion, types.EnemySplitMini}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Request %d: expected %s, got %s", i, expected[i], order[i])
		}
	}
}

func TestSpawnQueue_EnqueueDuringDrain(t *testing.T) {
	q := NewSpawnQueue()
	q.Enqueue(SpawnRequest{Kind: types.EnemySplit})

	processed := 0
	q.Drain(func(req SpawnRequest) {
		processed++
		q.Enqueue(SpawnRequest{Kind: types.EnemySplitMini})
	})

	if processed != 1 {
		t.Errorf("Expected only the original request processed, got %d", processed)
	}
	if q.Len() != 1 || q.CountKind(types.EnemySplitMini) != 1 {
		t.Errorf("Expected the new request to wait for the next drain, got %d pending", q.Len())
	}
}

func TestSpawnQueue_Clear(t *testing.T) {
	q := NewSpawnQueue()
	q.Enqueue(SpawnRequest{Kind: types.EnemyMinion})
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Expected empty queue after Clear, got %d", q.Len())
	}
}
