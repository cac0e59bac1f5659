package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "reset:"

// consumeScript deletes the stored token only when it matches the presented
// one, so a wrong guess cannot invalidate the live token.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    redis.call("DEL", KEYS[1])
    return 1
end
return 0
`)

// RedisResetTokenStore keeps reset tokens in redis with a TTL, surviving
// process restarts and shared across instances.
type RedisResetTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResetTokenStore(client *redis.Client, ttl time.Duration) *RedisResetTokenStore {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &RedisResetTokenStore{client: client, ttl: ttl}
}

func (s *RedisResetTokenStore) Issue(ctx context.Context, email string) (string, error) {
	token, err := newResetToken()
	if err != nil {
		return "", err
	}
	// SET overwrites any previously issued token for this email.
	if err := s.client.Set(ctx, resetKeyPrefix+email, token, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisResetTokenStore) Consume(ctx context.Context, email, token string) error {
	ok, err := consumeScript.Run(ctx, s.client, []string{resetKeyPrefix + email}, token).Int()
	if err != nil {
		return err
	}
	if ok != 1 {
		return ErrInvalidResetToken
	}
	return nil
}
