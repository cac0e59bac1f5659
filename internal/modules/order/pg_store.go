// README: Order store backed by PostgreSQL.
package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swiftlogix/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const orderColumns = `
	id, customer_id, driver_id,
	pickup_address, pickup_lat, pickup_lng,
	drop_address, drop_lat, drop_lng,
	material_type, weight_kg,
	distance_km, fare_total, driver_share, commission,
	status, status_version, created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, o *Order) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO orders (
			id, customer_id, driver_id,
			pickup_address, pickup_lat, pickup_lng,
			drop_address, drop_lat, drop_lng,
			material_type, weight_kg,
			distance_km, fare_total, driver_share, commission,
			status, status_version, created_at, updated_at
		) VALUES (
			$1, $2, NULL,
			$3, $4, $5,
			$6, $7, $8,
			$9, $10,
			$11, $12, $13, $14,
			$15, $16, NOW(), NOW()
		)
		RETURNING created_at, updated_at`,
		string(o.ID), string(o.CustomerID),
		o.PickupAddress, o.Pickup.Lat, o.Pickup.Lng,
		o.DropAddress, o.Drop.Lat, o.Drop.Lng,
		o.MaterialType, o.WeightKg,
		o.Fare.DistanceKm, o.Fare.Total, o.Fare.DriverShare, o.Fare.Commission,
		string(o.Status), o.StatusVersion,
	)
	return row.Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, string(id))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *PGStore) Assign(ctx context.Context, id, driverID types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET driver_id = $1,
		    status = $2,
		    status_version = status_version + 1,
		    updated_at = NOW()
		WHERE id = $3 AND status = $4 AND driver_id IS NULL`,
		string(driverID), string(StatusAssigned), string(id), string(StatusPending),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    status_version = status_version + 1,
		    updated_at = NOW()
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) ListByStatus(ctx context.Context, status Status) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (s *PGStore) ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at`, string(customerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (s *PGStore) ListByDriver(ctx context.Context, driverID types.ID) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE driver_id = $1 ORDER BY created_at`, string(driverID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (s *PGStore) Stats(ctx context.Context) (Stats, error) {
	row := s.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ($1, $2, $3)),
		       COALESCE(SUM(commission) FILTER (WHERE status = $4), 0)
		FROM orders`,
		string(StatusAssigned), string(StatusPicked), string(StatusDelivering), string(StatusDelivered),
	)
	var st Stats
	if err := row.Scan(&st.Orders, &st.ActiveOrders, &st.Revenue); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var driverID *string
	err := row.Scan(
		&o.ID, &o.CustomerID, &driverID,
		&o.PickupAddress, &o.Pickup.Lat, &o.Pickup.Lng,
		&o.DropAddress, &o.Drop.Lat, &o.Drop.Lng,
		&o.MaterialType, &o.WeightKg,
		&o.Fare.DistanceKm, &o.Fare.Total, &o.Fare.DriverShare, &o.Fare.Commission,
		&o.Status, &o.StatusVersion, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if driverID != nil {
		d := types.ID(*driverID)
		o.DriverID = &d
	}
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]*Order, error) {
	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
