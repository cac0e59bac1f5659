// README: Order aggregate and status definitions.
package order

import (
	"time"

	"swiftlogix/internal/modules/pricing"
	"swiftlogix/internal/types"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusPicked     Status = "picked"
	StatusDelivering Status = "delivering"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus maps a wire value onto a known status; anything else is rejected
// rather than carried around as a free-form string.
func ParseStatus(v string) (Status, bool) {
	switch Status(v) {
	case StatusPending, StatusAssigned, StatusPicked, StatusDelivering, StatusDelivered, StatusCancelled:
		return Status(v), true
	}
	return "", false
}

type Order struct {
	ID            types.ID
	CustomerID    types.ID
	DriverID      *types.ID
	PickupAddress string
	Pickup        types.Point
	DropAddress   string
	Drop          types.Point
	MaterialType  string
	WeightKg      float64
	Fare          pricing.FareQuote
	Status        Status
	StatusVersion int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AllowedTransitions represents the order state flow as code. Delivered and
// cancelled are terminal: they have no entry here.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusPicked, StatusCancelled},
	StatusPicked:     {StatusDelivering},
	StatusDelivering: {StatusDelivered},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
