// Package cache caches structural validation results so a host that
// repeatedly validates overlapping queries (e.g. one arriving from
// many client processes) does not re-walk the same query tree every
// time. Validate is pure given a query, so the cache key is a stable
// hash of the normalized query and the value is either "valid" or a
// serialized structural error.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is not present in the cache.
var ErrMiss = errors.New("cache: miss")

// Entry is the cached outcome of a single Validate call.
type Entry struct {
	Valid bool

	// Op/Path/Message mirror query.StructuralError's fields and are
	// only meaningful when Valid is false.
	Op      string
	Path    string
	Message string
}

// Cache is the validation-result cache contract. Both backends below
// satisfy it.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Close() error
	Health(ctx context.Context) error
}

// Config configures a cache backend.
type Config struct {
	// Type selects the backend: "redis" or "memory".
	Type string

	// Redis connection settings, used only when Type == "redis".
	URL      string
	Password string
	DB       int

	DefaultTTL time.Duration
	MaxItems   int
}

// DefaultConfig returns a Config with sensible defaults for the
// in-memory backend.
func DefaultConfig() Config {
	return Config{
		Type:       "memory",
		DefaultTTL: 5 * time.Minute,
		MaxItems:   10000,
	}
}

// New builds a Cache from cfg.
func New(cfg Config) (Cache, error) {
	switch cfg.Type {
	case "redis":
		return NewRedisCache(cfg)
	case "memory", "":
		return NewMemoryCache(cfg), nil
	default:
		return nil, errors.New("cache: unsupported backend type: " + cfg.Type)
	}
}
