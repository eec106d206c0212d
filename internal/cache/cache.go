package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inventorysync/internal/logger"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultTTL = 10 * time.Minute

	keyPrefix  = "storefront:v:"
	VersionKey = "storefront:version"
)

// Cache stores storefront responses under a version prefix. Bumping the
// version invalidates every entry at once.
type Cache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *logger.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{redis: client, ttl: ttl, logger: logger}
}

// Connect parses a redis:// URL and returns a client.
func Connect(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Get decodes the entry for key into dest. Any failure is a miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	version, err := c.version(ctx)
	if err != nil {
		return false
	}

	data, err := c.redis.Get(ctx, c.key(version, key)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Failed to decode cached %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	version, err := c.version(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.redis.Set(ctx, c.key(version, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every cached entry by bumping the version.
func (c *Cache) Invalidate(ctx context.Context) error {
	version, err := c.redis.Incr(ctx, VersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	c.logger.Info("Storefront cache invalidated, version %d", version)
	return nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	version, err := c.redis.Get(ctx, VersionKey).Int64()
	if err == redis.Nil {
		if err := c.redis.SetNX(ctx, VersionKey, 1, 0).Err(); err != nil {
			return 0, fmt.Errorf("failed to init cache version: %w", err)
		}
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache version: %w", err)
	}
	return version, nil
}

func (c *Cache) key(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, version, key)
}
