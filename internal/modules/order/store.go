// README: Order persistence contract; postgres and in-memory implementations.
package order

import (
	"context"

	"swiftlogix/internal/types"
)

// Stats are the aggregate figures shown on the admin dashboard.
type Stats struct {
	Orders       int
	ActiveOrders int
	Revenue      float64
}

// Store persists orders. Assign and UpdateStatus are atomic conditional
// writes: they apply only when the stored row still matches the stated
// precondition and report whether they did. Callers never do read-then-write.
type Store interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id types.ID) (*Order, error)
	// Assign sets the driver and moves pending -> assigned iff the order is
	// still pending and unassigned.
	Assign(ctx context.Context, id, driverID types.ID) (bool, error)
	// UpdateStatus moves from -> to iff the order still carries from and the
	// given status version.
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error)
	ListByStatus(ctx context.Context, status Status) ([]*Order, error)
	ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error)
	ListByDriver(ctx context.Context, driverID types.ID) ([]*Order, error)
	Stats(ctx context.Context) (Stats, error)
}
