//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/redis"
)

func TestRedis_Integration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, redis.Config{URL: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedis[string](client, cache.WithPrefix("folio-test"))

	_, err = c.Get(ctx, "missing")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "geo:203.0.113.1", "JP", time.Minute))
	v, err := c.Get(ctx, "geo:203.0.113.1")
	require.NoError(t, err)
	require.Equal(t, "JP", v)

	require.NoError(t, c.Delete(ctx, "geo:203.0.113.1"))
	_, err = c.Get(ctx, "geo:203.0.113.1")
	require.ErrorIs(t, err, cache.ErrNotFound)
}
