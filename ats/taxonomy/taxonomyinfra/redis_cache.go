package taxonomyinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements taxonomy.Cache with a TTL per entry
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed taxonomy cache
func NewRedisCache(client *redis.Client, ttl time.Duration) taxonomy.Cache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(key taxonomy.Key) string {
	return fmt.Sprintf("taxonomy:%s:%s", key.Profession.Normalized(), key.Level)
}

func (c *RedisCache) Get(ctx context.Context, key taxonomy.Key) (*taxonomy.Set, error) {
	data, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("taxonomy cache get: %w", err)
	}

	var set taxonomy.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("taxonomy cache unmarshal: %w", err)
	}
	return &set, nil
}

func (c *RedisCache) Put(ctx context.Context, key taxonomy.Key, set *taxonomy.Set) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("taxonomy cache marshal: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("taxonomy cache set: %w", err)
	}
	return nil
}
