package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis-backed validation cache for hosts that
// validate the same queries across many processes.
type RedisCache struct {
	client redis.UniversalClient
	config Config
}

// NewRedisCache dials a Redis-backed validation cache.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("cache: redis backend requires Config.URL")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return &RedisCache{client: redis.NewClient(opts), config: cfg}, nil
}

// Get returns the cached entry for key, or ErrMiss.
func (c *RedisCache) Get(ctx context.Context, key string) (Entry, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, fmt.Errorf("cache: redis get: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("cache: decode entry: %w", err)
	}
	return entry, nil
}

// Set stores entry under key with ttl (or the configured default TTL
// when ttl is zero).
func (c *RedisCache) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.config.DefaultTTL
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: encode entry: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	log.Printf("cache: stored validation result corr=%s key=%s valid=%t", uuid.NewString(), key, entry.Valid)
	return nil
}

// Close closes the underlying Redis connection.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("cache: redis close: %w", err)
	}
	return nil
}

// Health pings Redis.
func (c *RedisCache) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis health check: %w", err)
	}
	return nil
}
