// README: In-memory order store for tests and infra-free development.
package order

import (
	"context"
	"sync"
	"time"

	"swiftlogix/internal/types"
)

type MemoryStore struct {
	mu     sync.RWMutex
	orders map[types.ID]*Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[types.ID]*Order)}
}

func (m *MemoryStore) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	cp := *o
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.orders[o.ID] = &cp
	o.CreatedAt = now
	o.UpdatedAt = now
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// Assign holds the lock across check and write, giving the same
// exactly-one-winner guarantee as the SQL conditional update.
func (m *MemoryStore) Assign(_ context.Context, id, driverID types.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return false, ErrNotFound
	}
	if o.Status != StatusPending || o.DriverID != nil {
		return false, nil
	}
	d := driverID
	o.DriverID = &d
	o.Status = StatusAssigned
	o.StatusVersion++
	o.UpdatedAt = time.Now()
	return true, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return false, ErrNotFound
	}
	if o.Status != from || o.StatusVersion != version {
		return false, nil
	}
	o.Status = to
	o.StatusVersion++
	o.UpdatedAt = time.Now()
	return true, nil
}

func (m *MemoryStore) ListByStatus(_ context.Context, status Status) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Order
	for _, o := range m.orders {
		if o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListByCustomer(_ context.Context, customerID types.ID) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListByDriver(_ context.Context, driverID types.ID) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Order
	for _, o := range m.orders {
		if o.DriverID != nil && *o.DriverID == driverID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var st Stats
	for _, o := range m.orders {
		st.Orders++
		switch o.Status {
		case StatusAssigned, StatusPicked, StatusDelivering:
			st.ActiveOrders++
		case StatusDelivered:
			st.Revenue += o.Fare.Commission
		}
	}
	return st, nil
}
