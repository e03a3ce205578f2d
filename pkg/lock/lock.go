package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Locker serializes posting operations (stock recompute, stock count
// completion) across instances using redis locks. A nil redis client makes
// every lock a no-op, which is correct for single-instance deployments.
type Locker struct {
	client *redislock.Client
}

func New(redisClient *redis.Client) *Locker {
	if redisClient == nil {
		return &Locker{}
	}
	return &Locker{client: redislock.New(redisClient)}
}

// WithLock runs fn while holding the named lock
func (l *Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	if l == nil || l.client == nil {
		return fn()
	}

	lock, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if err != nil {
		return fmt.Errorf("could not acquire lock %s: %w", key, err)
	}
	defer lock.Release(context.WithoutCancel(ctx))

	return fn()
}
