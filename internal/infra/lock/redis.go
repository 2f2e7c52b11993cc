package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/domain/booking"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client     redis.UniversalClient
	ttl        time.Duration
	retryDelay time.Duration
	maxWait    time.Duration
	logger     zerolog.Logger
}

func NewRedisLocker(client redis.UniversalClient, ttl time.Duration, logger zerolog.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		retryDelay: 25 * time.Millisecond,
		maxWait:    ttl,
		logger:     logger,
	}
}

// Acquire polls SETNX until it wins, ctx ends or maxWait elapses.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.maxWait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		if time.Now().After(deadline) {
			return nil, booking.ErrLockBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("failed to release booking lock")
	}
}

var _ booking.Locker = (*RedisLocker)(nil)
