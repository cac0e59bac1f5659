// README: Order service implements the lifecycle state machine and pricing at creation.
package order

import (
	"context"
	"errors"
	"strings"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/modules/pricing"
	"swiftlogix/internal/observability"
	"swiftlogix/internal/types"

	"github.com/google/uuid"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("order not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state transition")
	ErrUnavailable  = errors.New("order unavailable")
	ErrConflict     = errors.New("order state conflict")
)

type Pricing interface {
	Quote(pickup, drop types.Point, weightKg float64) (pricing.FareQuote, error)
}

// CustomerStats lets the repository roll order count and spend into the
// customer's profile; the order module owns no invariant over those figures.
type CustomerStats interface {
	AddOrderSpend(ctx context.Context, customerID types.ID, fare float64) error
}

type Service struct {
	store   Store
	pricing Pricing
	stats   CustomerStats
}

func NewService(store Store, pricing Pricing, stats CustomerStats) *Service {
	return &Service{store: store, pricing: pricing, stats: stats}
}

type CreateCommand struct {
	CustomerID    types.ID
	PickupAddress string
	Pickup        types.Point
	DropAddress   string
	Drop          types.Point
	MaterialType  string
	WeightKg      float64
}

// Create validates the request, stamps the fare quote, and persists a pending
// order with no driver. The fare is fixed here; re-pricing is not supported.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	if cmd.CustomerID == "" ||
		strings.TrimSpace(cmd.PickupAddress) == "" ||
		strings.TrimSpace(cmd.DropAddress) == "" ||
		strings.TrimSpace(cmd.MaterialType) == "" {
		return nil, ErrBadRequest
	}
	quote, err := s.pricing.Quote(cmd.Pickup, cmd.Drop, cmd.WeightKg)
	if err != nil {
		return nil, ErrBadRequest
	}

	o := &Order{
		ID:            types.ID(uuid.NewString()),
		CustomerID:    cmd.CustomerID,
		PickupAddress: cmd.PickupAddress,
		Pickup:        cmd.Pickup,
		DropAddress:   cmd.DropAddress,
		Drop:          cmd.Drop,
		MaterialType:  cmd.MaterialType,
		WeightKg:      cmd.WeightKg,
		Fare:          quote,
		Status:        StatusPending,
		StatusVersion: 0,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	if s.stats != nil {
		// Aggregate counters are best effort; the order itself is committed.
		_ = s.stats.AddOrderSpend(ctx, cmd.CustomerID, quote.Total)
	}
	observability.OrdersCreatedTotal.Inc()
	return o, nil
}

type AcceptCommand struct {
	OrderID  types.ID
	DriverID types.ID
}

// Accept assigns the order to the driver iff it is still pending and
// unassigned. Two drivers racing for the same order resolve inside the
// store's conditional write: exactly one wins, the other gets ErrUnavailable.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) (*Order, error) {
	if cmd.DriverID == "" {
		return nil, ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending || o.DriverID != nil {
		return nil, ErrUnavailable
	}
	ok, err := s.store.Assign(ctx, cmd.OrderID, cmd.DriverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		observability.AcceptConflicts.Inc()
		return nil, ErrUnavailable
	}
	observability.OrdersAcceptedTotal.Inc()
	return s.store.Get(ctx, cmd.OrderID)
}

// UpdateStatus advances an order along assigned -> picked -> delivering ->
// delivered. Only the owning driver or an admin may advance; accept and
// cancel have their own entry points and are rejected here.
func (s *Service) UpdateStatus(ctx context.Context, id types.ID, caller auth.Identity, to Status) (*Order, error) {
	if to != StatusPicked && to != StatusDelivering && to != StatusDelivered {
		return nil, ErrInvalidState
	}
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != auth.RoleAdmin {
		if caller.Role != auth.RoleDriver || o.DriverID == nil || *o.DriverID != caller.UserID {
			return nil, ErrForbidden
		}
	}
	if !CanTransition(o.Status, to) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, o.Status, to, o.StatusVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	return s.store.Get(ctx, id)
}

// Cancel ends an order before pickup. Only the owning customer or an admin
// may cancel; from picked onwards the order must run to delivery.
func (s *Service) Cancel(ctx context.Context, id types.ID, caller auth.Identity) (*Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != auth.RoleAdmin {
		if caller.Role != auth.RoleCustomer || o.CustomerID != caller.UserID {
			return nil, ErrForbidden
		}
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, o.Status, StatusCancelled, o.StatusVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

// ListAvailable returns pending, unassigned orders a driver may accept.
func (s *Service) ListAvailable(ctx context.Context) ([]*Order, error) {
	return s.store.ListByStatus(ctx, StatusPending)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

// Earnings sums the driver's share over delivered orders.
type Earnings struct {
	DeliveredCount int
	Total          float64
}

func (s *Service) DriverEarnings(ctx context.Context, driverID types.ID) (Earnings, error) {
	orders, err := s.store.ListByDriver(ctx, driverID)
	if err != nil {
		return Earnings{}, err
	}
	var e Earnings
	for _, o := range orders {
		if o.Status == StatusDelivered {
			e.DeliveredCount++
			e.Total += o.Fare.DriverShare
		}
	}
	return e, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}
