// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_analysis/internal/feature/prices/domain/entity"
	"stock_analysis/internal/feature/prices/usecase"
)

// CachingPriceRepository decorates a PriceRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceRepository = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository decorates a PriceRepository with Redis caching.
// If ttl is 0 or negative, entries live until the next UTC midnight, when new
// daily bars may appear. If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceRepository, namespace string) *CachingPriceRepository {
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch inserts or updates price rows and invalidates related cache entries.
func (c *CachingPriceRepository) UpsertBatch(ctx context.Context, points []entity.PricePoint) error {
	// First upsert to the underlying repository
	if err := c.inner.UpsertBatch(ctx, points); err != nil {
		return err
	}
	// Exit early if Redis is not configured or there are no rows
	if c.rdb == nil || len(points) == 0 {
		return nil
	}

	// Invalidate affected cache entries (keys per symbol)
	seen := map[string]struct{}{}
	for _, p := range points {
		prefix := c.cacheKeyPrefix(p.Symbol)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		_ = c.deleteByPattern(ctx, prefix+"*") // Best effort: don't fail if cache deletion fails
	}
	return nil
}

// FindRange retrieves price rows, checking cache first then falling back to the database.
func (c *CachingPriceRepository) FindRange(ctx context.Context, symbol string, from, to time.Time, limit int) ([]entity.PricePoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindRange(ctx, symbol, from, to, limit)
	}

	key := c.cacheKey(symbol, from, to, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindRange(ctx, symbol, from, to, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		ttl := c.ttl
		if ttl <= 0 {
			ttl = TimeUntilNextMidnightUTC()
		}
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceRepository) cacheKey(symbol string, from, to time.Time, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		dateKey(from),
		dateKey(to),
		limit,
	)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingPriceRepository) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(symbol))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// dateKey renders a range bound for the cache key. The zero value means
// "unbounded" and must map to a stable token.
func dateKey(t time.Time) string {
	if t.IsZero() {
		return "any"
	}
	return t.UTC().Format("20060102")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	// Simple escaping of characters that are problematic for Redis keys
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
