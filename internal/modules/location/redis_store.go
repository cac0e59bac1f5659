// README: Driver position store backed by the Redis GEO index.
package location

import (
	"context"

	"github.com/redis/go-redis/v9"

	"swiftlogix/internal/types"
)

const driverGeoKey = "drivers:geo"

type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) Set(ctx context.Context, driverID types.ID, p types.Point) error {
	return s.redis.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      string(driverID),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

func (s *RedisStore) Get(ctx context.Context, driverID types.ID) (types.Point, bool, error) {
	pos, err := s.redis.GeoPos(ctx, driverGeoKey, string(driverID)).Result()
	if err != nil {
		return types.Point{}, false, err
	}
	if len(pos) == 0 || pos[0] == nil {
		return types.Point{}, false, nil
	}
	return types.Point{Lat: pos[0].Latitude, Lng: pos[0].Longitude}, true, nil
}
