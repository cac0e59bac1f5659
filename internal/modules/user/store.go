// README: User persistence contract.
package user

import (
	"context"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/types"
)

type Store interface {
	// Create fails with ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id types.ID) (*User, error)
	UpdatePassword(ctx context.Context, id types.ID, hash string) error
	SetDriverAvailability(ctx context.Context, id types.ID, available bool) error
	// AddOrderSpend bumps the customer's aggregate order count and spend.
	AddOrderSpend(ctx context.Context, customerID types.ID, fare float64) error
	List(ctx context.Context) ([]*User, error)
	CountByRole(ctx context.Context, role auth.Role) (int, error)
}
