package game

import (
	"bytes"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

// 存储路径常量
const (
	snapshotObject   = "battle"
	snapshotProperty = "snapshot"
)

// SnapshotStore 单个战斗存档的持久化
//
// 使用 gdata 跨平台存储，gdataManager 为 nil 时退化为仅内存保存
// （例如无法确定数据目录的平台，或测试）。
type SnapshotStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	serializer   *BattleSerializer
	memory       []byte // 降级模式下的存档
}

// NewSnapshotStore 创建存档存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存保存）
func NewSnapshotStore(gdataManager *gdata.Manager) *SnapshotStore {
	return &SnapshotStore{
		gdataManager: gdataManager,
		serializer:   NewBattleSerializer(),
	}
}

// Save 保存存档，覆盖已有存档
func (s *SnapshotStore) Save(saveData *BattleSaveData) error {
	var buf bytes.Buffer
	if err := s.serializer.Encode(&buf, saveData); err != nil {
		return err
	}

	if s.gdataManager == nil {
		s.memory = buf.Bytes()
		return nil
	}

	if err := s.gdataManager.SaveObjectProp(snapshotObject, snapshotProperty, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	log.Printf("[SnapshotStore] Snapshot saved: Wave=%d, Enemies=%d, Towers=%d (%d bytes)",
		saveData.Wave, len(saveData.Enemies), len(saveData.Towers), buf.Len())
	return nil
}

// Load 读取存档
// 没有存档时返回 ErrNoSnapshot
func (s *SnapshotStore) Load() (*BattleSaveData, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}

	saveData, err := s.serializer.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	log.Printf("[SnapshotStore] Snapshot loaded: Wave=%d, Enemies=%d, Towers=%d",
		saveData.Wave, len(saveData.Enemies), len(saveData.Towers))
	return saveData, nil
}

// Exists 是否存在存档
func (s *SnapshotStore) Exists() bool {
	if s.gdataManager == nil {
		return len(s.memory) > 0
	}
	return s.gdataManager.ObjectPropExists(snapshotObject, snapshotProperty)
}

// Info 读取存档概要
func (s *SnapshotStore) Info() (*BattleSaveInfo, error) {
	saveData, err := s.Load()
	if err != nil {
		return nil, err
	}
	return saveData.ToBattleSaveInfo(), nil
}

func (s *SnapshotStore) load() ([]byte, error) {
	if s.gdataManager == nil {
		if len(s.memory) == 0 {
			return nil, ErrNoSnapshot
		}
		return s.memory, nil
	}

	if !s.gdataManager.ObjectPropExists(snapshotObject, snapshotProperty) {
		return nil, ErrNoSnapshot
	}
	data, err := s.gdataManager.LoadObjectProp(snapshotObject, snapshotProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, nil
}
