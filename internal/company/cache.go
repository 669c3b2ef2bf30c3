package company

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCacheExpiry = 24 * time.Hour

	cacheKeyPrefix = "offer-matcher:company:"
)

// RedisCache keeps profiles in Redis as JSON documents with a fixed expiry.
type RedisCache struct {
	client *redis.Client
	expiry time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects to the server at redisURL (redis://[user:pass@]host:port/db).
func NewRedisCache(redisURL string, expiry time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if expiry <= 0 {
		expiry = DefaultCacheExpiry
	}

	return &RedisCache{client: redis.NewClient(opts), expiry: expiry}, nil
}

func (c *RedisCache) Get(ctx context.Context, name string) (*Profile, bool, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, fmt.Errorf("decode cached profile %s: %w", name, err)
	}

	return &profile, true, nil
}

func (c *RedisCache) Set(ctx context.Context, name string, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", name, err)
	}
	return c.client.Set(ctx, cacheKeyPrefix+name, data, c.expiry).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
