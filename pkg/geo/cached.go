package geo

import (
	"context"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

// DefaultCacheTTL is how long a successful lookup is reused.
const DefaultCacheTTL = 24 * time.Hour

// Cached memoizes a Locator. Concurrent lookups for one address share a
// single upstream call. Failures are not cached.
type Cached struct {
	next  resolver.Locator
	store cache.Cache[string]
	ttl   time.Duration
}

// NewCached wraps next with store. ttl <= 0 means DefaultCacheTTL.
func NewCached(next resolver.Locator, store cache.Cache[string], ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{next: next, store: store, ttl: ttl}
}

func (c *Cached) Country(ctx context.Context, addr string) (string, error) {
	return cache.GetOrSet(ctx, c.store, "geo:"+addr, func(ctx context.Context) (string, time.Duration, error) {
		country, err := c.next.Country(ctx, addr)
		return country, c.ttl, err
	})
}
