package obligations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "taxgate/pkg/domain"
)

const defaultCacheTTL = 5 * time.Minute

// RedisCache stores derived obligations in Redis with a short TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed obligation cache.
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client, ttl: defaultCacheTTL}
}

func cacheKey(vrn id.VRN, year int) string {
	return fmt.Sprintf("obligations:%s:%d", vrn, year)
}

func (c *RedisCache) Get(ctx context.Context, vrn id.VRN, year int) ([]Obligation, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(vrn, year)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get obligations from cache: %w", err)
	}

	var obs []Obligation
	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, false, fmt.Errorf("decode cached obligations: %w", err)
	}
	return obs, true, nil
}

func (c *RedisCache) Set(ctx context.Context, vrn id.VRN, year int, obs []Obligation) error {
	raw, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("encode obligations: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(vrn, year), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache obligations: %w", err)
	}
	return nil
}
