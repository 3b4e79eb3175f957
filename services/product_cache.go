package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productCacheVersionKey = "products:ver"

// cachedProductPage is the serialized form of one public listing page.
type cachedProductPage struct {
	Products json.RawMessage `json:"products"`
	Total    int64           `json:"total"`
}

// ProductCache caches public catalog listing pages in redis. Cache keys
// embed a version counter that every catalog write bumps, so stale pages
// simply stop being addressed instead of being scanned and deleted.
// A nil client disables caching entirely.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache creates a ProductCache. client may be nil.
func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

func (c *ProductCache) key(ctx context.Context, query string, page, limit int) (string, error) {
	ver, err := c.client.Get(ctx, productCacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("products:v%d:q=%s:p=%d:l=%d", ver, query, page, limit), nil
}

// Get returns a cached listing page, or ok=false on miss or when the
// cache is disabled.
func (c *ProductCache) Get(ctx context.Context, query string, page, limit int) (json.RawMessage, int64, bool) {
	if c.client == nil {
		return nil, 0, false
	}
	key, err := c.key(ctx, query, page, limit)
	if err != nil {
		c.logger.Warn("product cache version lookup failed", zap.Error(err))
		return nil, 0, false
	}

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, 0, false
	}
	if err != nil {
		c.logger.Warn("product cache read failed", zap.Error(err))
		return nil, 0, false
	}

	var cached cachedProductPage
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, 0, false
	}
	return cached.Products, cached.Total, true
}

// Set stores a listing page. Failures are logged and ignored; the cache
// is best-effort.
func (c *ProductCache) Set(ctx context.Context, query string, page, limit int, products json.RawMessage, total int64) {
	if c.client == nil {
		return
	}
	key, err := c.key(ctx, query, page, limit)
	if err != nil {
		return
	}

	data, err := json.Marshal(cachedProductPage{Products: products, Total: total})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.Error(err))
	}
}

// Invalidate bumps the version counter, orphaning all cached pages.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, productCacheVersionKey).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed", zap.Error(err))
	}
}
