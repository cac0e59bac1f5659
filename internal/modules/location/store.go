// README: Driver position storage contract.
package location

import (
	"context"

	"swiftlogix/internal/types"
)

type Store interface {
	Set(ctx context.Context, driverID types.ID, p types.Point) error
	// Get returns the driver's last reported position, or found=false if the
	// driver has never reported one.
	Get(ctx context.Context, driverID types.ID) (types.Point, bool, error)
}
