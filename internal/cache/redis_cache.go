package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCooldownCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCooldownCache builds a cache whose entries expire after ttl,
// normally the reminder cooldown window.
func NewRedisCooldownCache(rdb *redis.Client, ttl time.Duration) *RedisCooldownCache {
	return &RedisCooldownCache{rdb: rdb, ttl: ttl}
}

func key(userID, requestID string) string {
	return fmt.Sprintf("reminder:%s:%s", userID, requestID)
}

func (c *RedisCooldownCache) WasRecentlySent(ctx context.Context, userID, requestID string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key(userID, requestID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisCooldownCache) MarkSent(ctx context.Context, userID, requestID string) error {
	return c.rdb.Set(ctx, key(userID, requestID), time.Now().UTC().Format(time.RFC3339), c.ttl).Err()
}
