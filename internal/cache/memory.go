package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	page      *CachedPage
	expiresAt time.Time
}

// MemoryPageCache is a process-local PageCache. It backs deployments that
// run without Redis and gives tests a deterministic cache to stub against.
type MemoryPageCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryPageCache() *MemoryPageCache {
	return &MemoryPageCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryPageCache) Get(_ context.Context, key string) (*CachedPage, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.page, true, nil
}

func (c *MemoryPageCache) Set(_ context.Context, key string, page *CachedPage, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{page: page, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryPageCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
