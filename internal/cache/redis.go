package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// PageCachePrefix is the key prefix for cached pages.
const PageCachePrefix = "page:"

// RedisPageCache implements PageCache on a shared Redis client.
type RedisPageCache struct {
	client *redis.Client
}

// NewRedisPageCache creates a PageCache backed by Redis.
// URL format: redis://[:password@]host:port[/db]
func NewRedisPageCache(redisURL string) (*RedisPageCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisPageCache{client: redis.NewClient(opts)}, nil
}

// Ping verifies the connection. Call on startup to fail fast.
func (c *RedisPageCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *RedisPageCache) Close() error {
	return c.client.Close()
}

func (c *RedisPageCache) Get(ctx context.Context, key string) (*CachedPage, bool, error) {
	data, err := c.client.Get(ctx, PageCachePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached page: %w", err)
	}

	var page CachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false, fmt.Errorf("decode cached page: %w", err)
	}
	return &page, true, nil
}

func (c *RedisPageCache) Set(ctx context.Context, key string, page *CachedPage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode cached page: %w", err)
	}
	if err := c.client.Set(ctx, PageCachePrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set cached page: %w", err)
	}
	return nil
}

// Clear scans and deletes every page key. SCAN rather than KEYS so a large
// cache does not block the server.
func (c *RedisPageCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, PageCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cached pages: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear cached pages: %w", err)
	}
	log.WithField("keys", len(keys)).Debug("page cache cleared")
	return nil
}
