package display

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	freshKey    = "testimonials:fresh"
	lastGoodKey = "testimonials:lastgood"
)

// Cache is the small slice of Redis the read side needs. The last-good entry
// is written without expiry so a store outage degrades to stale data instead
// of an empty page.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) Cache {
	if client == nil {
		return nil
	}
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
