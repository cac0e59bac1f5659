// README: User account model shared by customers, drivers, and admins.
package user

import (
	"time"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/types"
)

type User struct {
	ID           types.ID
	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role
	IsActive     bool
	// IsAvailable is meaningful for drivers only.
	IsAvailable bool
	// TotalOrders and TotalSpent are customer aggregates, rolled up on order
	// creation.
	TotalOrders int
	TotalSpent  float64
	CreatedAt   time.Time
}

// PublicProfile is the caller-visible projection of a user.
type PublicProfile struct {
	ID    types.ID  `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  auth.Role `json:"role"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
