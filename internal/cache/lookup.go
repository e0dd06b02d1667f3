// Package cache holds the redis-backed read cache for the POS scan path.
// Barcode lookups happen once per scanned item at the registers, so cache
// hits skip the catalog query entirely; any mutation of a product
// invalidates its entry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloomnext/pos-inventory/internal/models"
)

const lookupKeyPrefix = "catalog:barcode:"

type LookupCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLookupCache(rdb *redis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached product for a barcode. A miss or a cache failure
// both report !ok; the caller falls through to the catalog store.
func (c *LookupCache) Get(ctx context.Context, barcode string) (models.Product, bool) {
	data, err := c.rdb.Get(ctx, lookupKeyPrefix+barcode).Bytes()
	if err != nil {
		return models.Product{}, false
	}
	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Product{}, false
	}
	return p, true
}

// Set caches the product under its barcode with the configured TTL.
func (c *LookupCache) Set(ctx context.Context, p models.Product) error {
	if p.Barcode == "" {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, lookupKeyPrefix+p.Barcode, data, c.ttl).Err()
}

// Invalidate drops the cached entry for a barcode.
func (c *LookupCache) Invalidate(ctx context.Context, barcode string) error {
	if barcode == "" {
		return nil
	}
	err := c.rdb.Del(ctx, lookupKeyPrefix+barcode).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
