package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/storelane/admin-panel/internal/api/metrics"
	"github.com/storelane/admin-panel/internal/core/domain"
	"github.com/storelane/admin-panel/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// ProductCache caches product list pages and detail rows in Redis.
//
// List keys embed an owner-scoped generation counter; invalidating an owner's
// lists is a single INCR that orphans every key of the previous generation
// (they age out via TTL), so no SCAN is ever needed. Detail keys are deleted
// directly. All failures degrade to the repository: a broken cache is logged,
// never surfaced.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
func NewProductCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ProductCache{client: client, ttl: ttl, log: log}
}

type cachedList struct {
	Items []*domain.Product `json:"items"`
	Total int64             `json:"total"`
}

func (c *ProductCache) GetList(ctx context.Context, f ports.ListProductsFilter) (*ports.CachedList, bool) {
	raw, err := c.client.Get(ctx, c.listKey(ctx, f)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("cache: list read failed")
		}
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var entry cachedList
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.log.Warn().Err(err).Msg("cache: list entry corrupt")
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
	return &ports.CachedList{Items: entry.Items, Total: entry.Total}, true
}

func (c *ProductCache) SetList(ctx context.Context, f ports.ListProductsFilter, items []*domain.Product, total int64) {
	raw, err := json.Marshal(cachedList{Items: items, Total: total})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.listKey(ctx, f), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: list write failed")
	}
}

func (c *ProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, bool) {
	raw, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("cache: detail read failed")
		}
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
	return &p, true
}

func (c *ProductCache) SetProduct(ctx context.Context, p *domain.Product) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, detailKey(p.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: detail write failed")
	}
}

// InvalidateList bumps the owner's list generation, orphaning every cached
// page for that owner.
func (c *ProductCache) InvalidateList(ctx context.Context, ownerID string) {
	if err := c.client.Incr(ctx, versionKey(ownerID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("owner_id", ownerID).Msg("cache: list invalidation failed")
	}
}

func (c *ProductCache) InvalidateProduct(ctx context.Context, id string) {
	if err := c.client.Del(ctx, detailKey(id)).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", id).Msg("cache: detail invalidation failed")
	}
}

// listVersion reads the owner's current list generation; a missing key reads
// as generation 0.
func (c *ProductCache) listVersion(ctx context.Context, ownerID string) int64 {
	ver, err := c.client.Get(ctx, versionKey(ownerID)).Int64()
	if err != nil && err != redis.Nil {
		c.log.Warn().Err(err).Msg("cache: version read failed")
	}
	return ver
}

func (c *ProductCache) listKey(ctx context.Context, f ports.ListProductsFilter) string {
	ver := c.listVersion(ctx, f.OwnerID)
	return fmt.Sprintf("products:list:%s:%d:%d:%d:%s", f.OwnerID, ver, f.Page, f.Limit, f.Search)
}

func detailKey(id string) string {
	return "products:detail:" + id
}

func versionKey(ownerID string) string {
	return "products:ver:" + ownerID
}
