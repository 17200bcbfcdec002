package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CaseCache is a short-TTL redis cache for per-merchant eligible-case
// listings. Dashboards poll these listings aggressively; the eligibility
// evaluation itself always runs against the live store on submission.
type CaseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCaseCache(rdb *redis.Client, ttl time.Duration) *CaseCache {
	return &CaseCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached listing, or nil when absent or redis is down. A
// cache miss is never an error for the caller.
func (c *CaseCache) Get(ctx context.Context, key string) []byte {
	if c == nil || c.rdb == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (c *CaseCache) Set(ctx context.Context, key string, data []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, key, data, c.ttl)
}

// Invalidate drops a merchant's listings after a submission changes them.
func (c *CaseCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, keys...)
}
