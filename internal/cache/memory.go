package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process LRU cache of validation outcomes,
// the default backend when no Redis is configured.
type MemoryCache struct {
	mu     sync.Mutex
	items  map[string]*list.Element
	lru    *list.List
	config Config
}

type memoryEntry struct {
	key       string
	entry     Entry
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory validation cache.
func NewMemoryCache(cfg Config) *MemoryCache {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	return &MemoryCache{
		items:  make(map[string]*list.Element),
		lru:    list.New(),
		config: cfg,
	}
}

// Get returns the cached entry for key, or ErrMiss.
func (c *MemoryCache) Get(ctx context.Context, key string) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return Entry{}, ErrMiss
	}
	me := elem.Value.(*memoryEntry)
	if time.Now().After(me.expiresAt) {
		c.deleteInternal(key)
		return Entry{}, ErrMiss
	}
	c.lru.MoveToFront(elem)
	return me.entry, nil
}

// Set stores entry under key with ttl (or the configured default TTL
// when ttl is zero), evicting the least recently used entry if the
// cache is at capacity.
func (c *MemoryCache) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.config.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.Remove(elem)
		delete(c.items, key)
	}

	for c.config.MaxItems > 0 && c.lru.Len() >= c.config.MaxItems {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.deleteInternal(oldest.Value.(*memoryEntry).key)
	}

	elem := c.lru.PushFront(&memoryEntry{key: key, entry: entry, expiresAt: time.Now().Add(ttl)})
	c.items[key] = elem
	return nil
}

func (c *MemoryCache) deleteInternal(key string) {
	if elem, ok := c.items[key]; ok {
		c.lru.Remove(elem)
		delete(c.items, key)
	}
}

// Close clears the cache. A MemoryCache holds no external resources.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru = list.New()
	return nil
}

// Health always succeeds for the in-memory backend.
func (c *MemoryCache) Health(ctx context.Context) error { return nil }
