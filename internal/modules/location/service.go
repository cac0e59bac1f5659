// README: Location service validates and records driver position updates.
package location

import (
	"context"
	"errors"

	"swiftlogix/internal/types"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Update(ctx context.Context, driverID types.ID, p types.Point) error {
	if driverID == "" || !p.Valid() {
		return ErrInvalidCoordinates
	}
	return s.store.Set(ctx, driverID, p)
}

func (s *Service) Last(ctx context.Context, driverID types.ID) (types.Point, bool, error) {
	return s.store.Get(ctx, driverID)
}
