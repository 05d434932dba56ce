package plan

import (
	"fmt"

	"github.com/hitoshi/gameplan/internal/kvstore"
)

// plannedEventsKey は永続化ストア内での計画リストの論理キー。
const plannedEventsKey = "planned_events"

// KVPersistence はファイルバックのキーバリューストアへ計画を保存する。
type KVPersistence struct {
	store *kvstore.FileStore
}

// NewKVPersistence はKVPersistenceの新しいインスタンスを生成する。
func NewKVPersistence(store *kvstore.FileStore) *KVPersistence {
	return &KVPersistence{store: store}
}

// LoadPlan は保存済みの計画を読み込む。キー不在・破損は空の計画を返す。
func (p *KVPersistence) LoadPlan() ([]int, error) {
	var ids []int
	ok, err := p.store.Get(plannedEventsKey, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return ids, nil
}

// SavePlan は計画全体を書き込む。
func (p *KVPersistence) SavePlan(ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	if err := p.store.Set(plannedEventsKey, ids); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}
