package cache

import (
	"context"
	"time"
)

// CachedPage is a rendered response held by the page cache.
type CachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache stores rendered pages keyed by request path with a fixed expiry.
// Within the TTL window stale content is acceptable; Clear is the escape
// hatch for correctness-sensitive flows. Interface-first so tests can run
// against the in-memory implementation deterministically.
type PageCache interface {
	// Get returns the cached page for key, or found=false on a miss.
	Get(ctx context.Context, key string) (page *CachedPage, found bool, err error)

	// Set stores the page under key for ttl.
	Set(ctx context.Context, key string, page *CachedPage, ttl time.Duration) error

	// Clear drops every cached page.
	Clear(ctx context.Context) error
}
