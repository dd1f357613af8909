package game

import (
	"errors"
	"testing"
)

func TestSnapshotStore_Degraded(t *testing.T) {
	store := NewSnapshotStore(nil)

	if store.Exists() {
		t.Error("Expected no snapshot initially")
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Expected ErrNoSnapshot, got %v", err)
	}

	em, gs, _, _, _ := newTestBattle()
	data, _ := NewBattleSerializer().Collect(em, gs)
	if err := store.Save(data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Error("Expected snapshot after Save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Wave != 4 || len(loaded.Enemies) != 1 {
		t.Errorf("Unexpected loaded snapshot: wave=%d enemies=%d", loaded.Wave, len(loaded.Enemies))
	}
}

func TestSnapshotStore_Gdata(t *testing.T) {
	m := newTestGdata(t, "test_td_snapshot")

	em, gs, _, _, _ := newTestBattle()
	data, _ := NewBattleSerializer().Collect(em, gs)

	if err := NewSnapshotStore(m).Save(data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 新的 store 从同一个存储读取
	store := NewSnapshotStore(m)
	if !store.Exists() {
		t.Fatal("Expected snapshot to exist")
	}
	info, err := store.Info()
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Wave != 4 || info.Lives != 20 || info.Score != 120 {
		t.Errorf("Unexpected snapshot info: %+v", info)
	}
}

func TestSnapshotStore_SaveNil(t *testing.T) {
	if err := NewSnapshotStore(nil).Save(nil); err == nil {
		t.Error("Expected error when saving nil data")
	}
}
