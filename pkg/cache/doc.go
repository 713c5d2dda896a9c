// Package cache provides a small generic TTL cache with in-memory and Redis
// backends.
//
// The site uses it for geolocation lookups (keyed by client address) and for
// server-side language preferences (keyed by visitor ID). Pick the backend at
// startup; callers only see the Cache interface:
//
//	var c cache.Cache[string]
//	if client != nil {
//	    c = cache.NewRedis[string](client, cache.WithPrefix("geo"))
//	} else {
//	    c = cache.NewMemory[string]()
//	}
//
// GetOrSet deduplicates concurrent misses with singleflight. Keys are shared
// across all caches in the process, so prefix them per use.
package cache
