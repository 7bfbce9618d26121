package store

import (
	"context"
	"slices"
	"sync"

	"github.com/stevemurr/simple-items-server/model"
)

// MemoryStore keeps the collection in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items model.Collection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: model.Collection{}}
}

// Items are plain values, so a shallow clone is a full copy.
func (m *MemoryStore) Load(_ context.Context) (model.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.items)
	if out == nil {
		out = model.Collection{}
	}
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, items model.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.Clone(items)
	return nil
}
