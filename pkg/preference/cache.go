package preference

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

// DefaultCacheTTL keeps a server-side preference as long as the cookie lives.
const DefaultCacheTTL = 365 * 24 * time.Hour

// Cache keeps preferences in a pkg/cache backend (memory or Redis).
type Cache struct {
	store cache.Cache[string]
	ttl   time.Duration
}

// NewCache creates a Backend. ttl <= 0 means DefaultCacheTTL.
func NewCache(store cache.Cache[string], ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{store: store, ttl: ttl}
}

func (c *Cache) For(visitorID string) resolver.Store {
	return cacheStore{Cache: c, visitor: visitorID}
}

type cacheStore struct {
	*Cache
	visitor string
}

func (s cacheStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, s.key(key))
	if errors.Is(err, cache.ErrNotFound) {
		return "", resolver.ErrNotFound
	}
	return v, err
}

func (s cacheStore) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.key(key), value, s.ttl)
}

func (s cacheStore) key(k string) string {
	return "pref:" + s.visitor + ":" + k
}
