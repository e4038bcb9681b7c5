package server

import (
	"sync"
	"time"

	"github.com/mj1618/desktop-dnd/internal/model"
)

// cacheEntry holds a parsed layout with its timestamp.
type cacheEntry struct {
	layout    *model.Layout
	timestamp time.Time
}

// LayoutCache provides a TTL-based cache for parsed layout files.
type LayoutCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	load    func(path string) (*model.Layout, error)
}

// NewLayoutCache creates a new cache. A ttl of 0 disables caching.
func NewLayoutCache(ttl time.Duration) *LayoutCache {
	return &LayoutCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		load:    model.LoadLayout,
	}
}

// Layout returns the cached layout if within TTL, otherwise loads it fresh.
func (c *LayoutCache) Layout(path string) (*model.Layout, error) {
	if c.ttl == 0 {
		return c.load(path)
	}

	c.mu.Lock()
	if entry, ok := c.entries[path]; ok && time.Since(entry.timestamp) < c.ttl {
		c.mu.Unlock()
		return entry.layout, nil
	}
	c.mu.Unlock()

	l, err := c.load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{layout: l, timestamp: time.Now()}
	c.mu.Unlock()

	return l, nil
}

// Invalidate removes the entry for path.
func (c *LayoutCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}
