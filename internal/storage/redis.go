package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache holds checkout idempotency markers. A marker claims the token
// for the duration of the TTL window; the order row's unique key column is
// the durable backstop.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) CheckoutMarkerKey(token string) string {
	return "checkout:" + token
}

// SetIfAbsent claims the key, returning false if another attempt already
// holds it.
func (c *RedisCache) SetIfAbsent(ctx context.Context, key string) (bool, error) {
	return c.Client.SetNX(ctx, key, "1", c.TTL).Result()
}

func (c *RedisCache) Release(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}
