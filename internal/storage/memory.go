package storage

import (
	"context"
	"sync"

	"github.com/ocp-advisor/filterstate/internal/filters"
)

// Memory keeps snapshots in process memory only.
type Memory struct {
	mu    sync.Mutex
	views filters.Snapshot
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{views: filters.Snapshot{}}
}

func (m *Memory) Load(ctx context.Context) (filters.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.views.Clone(), nil
}

func (m *Memory) Save(ctx context.Context, view filters.View, state filters.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[view] = state.Clone()
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views = filters.Snapshot{}
	return nil
}

func (m *Memory) Close() error { return nil }
