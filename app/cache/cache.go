package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a bounded TTL cache for resolved CMS references (author and
// category titles, slugs, asset URLs). It is an explicit dependency of the
// resolver, never a package-level singleton, so tests can run with it
// disabled. Concurrent loads for the same key are collapsed via singleflight.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	order []string
	ttl   time.Duration
	max   int
	sf    singleflight.Group
}

type entry struct {
	value     string
	expiresAt time.Time
}

type Options struct {
	TTL        time.Duration
	MaxEntries int
}

func New(opts Options) *Cache {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 512
	}
	return &Cache{
		items: make(map[string]entry),
		order: make([]string, 0, opts.MaxEntries),
		ttl:   opts.TTL,
		max:   opts.MaxEntries,
	}
}

// GetOrLoad returns the cached value for key, or invokes load once (across
// concurrent callers) and stores the result. Empty results are not cached so
// a transient upstream failure does not pin a miss for a full TTL.
func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) string) string {
	if c == nil {
		return load(ctx)
	}

	if value, ok := c.get(key); ok {
		return value
	}

	result, _, _ := c.sf.Do(key, func() (interface{}, error) {
		if value, ok := c.get(key); ok {
			return value, nil
		}

		value := load(ctx)
		if value != "" {
			c.set(key, value)
		}
		return value, nil
	})

	return result.(string)
}

func (c *Cache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (c *Cache) set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.items, oldest)
		}
		c.order = append(c.order, key)
	}

	c.items[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge drops all entries.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
	c.order = c.order[:0]
}
