// README: In-memory driver position store for tests and infra-free development.
package location

import (
	"context"
	"sync"

	"swiftlogix/internal/types"
)

type MemoryStore struct {
	mu        sync.RWMutex
	positions map[types.ID]types.Point
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{positions: make(map[types.ID]types.Point)}
}

func (m *MemoryStore) Set(_ context.Context, driverID types.ID, p types.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[driverID] = p
	return nil
}

func (m *MemoryStore) Get(_ context.Context, driverID types.ID) (types.Point, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.positions[driverID]
	return p, ok, nil
}
