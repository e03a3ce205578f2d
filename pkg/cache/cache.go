package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tavernhq/backoffice/pkg/logger"
)

// Cache is an explicit TTL cache for read-mostly reference data (product,
// category and ingredient lists). Mutating operations must call Invalidate
// with the keys they dirty; nothing expires implicitly besides the TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache. A nil client disables caching entirely, so callers
// never need to branch on availability.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// GetJSON reads a cached value into dest. Returns false on miss or when the
// cache is disabled; cache errors are logged and treated as misses.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Cache payload corrupt, dropping")
		_ = c.client.Del(ctx, key).Err()
		return false
	}

	return true
}

// SetJSON stores a value under key with the configured TTL
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Cache marshal failed")
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Cache write failed")
	}
}

// Invalidate removes the given keys. Called by mutation commands after a
// successful write.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx).Err(err).Strs("cache_keys", keys).Msg("Cache invalidation failed")
	}
}
