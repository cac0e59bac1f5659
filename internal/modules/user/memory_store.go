// README: In-memory user store for tests and infra-free development.
package user

import (
	"context"
	"sync"
	"time"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/types"
)

type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[types.ID]*User
	byEmail map[string]types.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[types.ID]*User),
		byEmail: make(map[string]types.ID),
	}
}

func (m *MemoryStore) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byEmail[u.Email]; taken {
		return ErrEmailTaken
	}
	cp := *u
	cp.CreatedAt = time.Now()
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = u.ID
	u.CreatedAt = cp.CreatedAt
	return nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m.byID[id]
	return &cp, nil
}

func (m *MemoryStore) GetByID(_ context.Context, id types.ID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) UpdatePassword(_ context.Context, id types.ID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *MemoryStore) SetDriverAvailability(_ context.Context, id types.ID, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsAvailable = available
	return nil
}

func (m *MemoryStore) AddOrderSpend(_ context.Context, customerID types.ID, fare float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[customerID]
	if !ok {
		return ErrNotFound
	}
	u.TotalOrders++
	u.TotalSpent += fare
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*User, 0, len(m.byID))
	for _, u := range m.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStore) CountByRole(_ context.Context, role auth.Role) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, u := range m.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}
