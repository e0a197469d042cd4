// Package document fetches planning documents, extracts their text and
// caches the result.
package document

import (
	"context"
	"sync"
	"time"
)

// Cache stores extracted document text keyed by source URL.
type Cache interface {
	// Get returns the cached text and true, or "" and false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores text under key for ttl.
	Set(ctx context.Context, key, text string, ttl time.Duration) error
	// Clear drops every cached entry.
	Clear(ctx context.Context) error
	// Backend names the implementation for metrics labels.
	Backend() string
}

type memoryEntry struct {
	text      string
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache.  Expired entries are dropped
// lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock constructs a MemoryCache with a caller-supplied
// clock, for expiry tests.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	c := NewMemoryCache()
	c.now = now
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry.
		if current, still := c.entries[key]; still && c.now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.text, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key, text string, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{text: text, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Backend() string { return "memory" }

// Len reports the number of live and expired entries currently held.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
