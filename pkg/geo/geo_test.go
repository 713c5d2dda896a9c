package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/geo"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClient_Country(t *testing.T) {
	t.Parallel()

	t.Run("reads the configured field", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"ip":"203.0.113.7","countryCode":"kr"}`))
		}))
		t.Cleanup(srv.Close)

		c := geo.New(
			geo.WithHTTPClient(srv.Client()),
			geo.WithURL(srv.URL+"/lookup/{ip}"),
			geo.WithField("countryCode"),
		)
		country, err := c.Country(context.Background(), "203.0.113.7")
		require.NoError(t, err)
		require.Equal(t, "KR", country)
		require.Equal(t, "/lookup/203.0.113.7", gotPath)
	})

	malformed := map[string]struct {
		status int
		body   string
	}{
		"server error":  {http.StatusTooManyRequests, `{"error":true}`},
		"not json":      {http.StatusOK, `<html>`},
		"missing field": {http.StatusOK, `{"error":true,"reason":"RateLimited"}`},
		"non-string":    {http.StatusOK, `{"country_code":42}`},
		"not a country": {http.StatusOK, `{"country_code":"ZZZ"}`},
		"empty value":   {http.StatusOK, `{"country_code":""}`},
	}
	for name, tc := range malformed {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newServer(t, tc.status, tc.body)
			c := geo.New(geo.WithHTTPClient(srv.Client()), geo.WithURL(srv.URL+"/{ip}/json/"))
			_, err := c.Country(context.Background(), "203.0.113.7")
			require.ErrorIs(t, err, geo.ErrMalformed)
		})
	}
}

func TestClient_RejectsLocalAddresses(t *testing.T) {
	t.Parallel()

	srv, hits := newServer(t, http.StatusOK, `{"country_code":"JP"}`)
	c := geo.New(geo.WithHTTPClient(srv.Client()), geo.WithURL(srv.URL+"/{ip}"))

	for _, addr := range []string{"127.0.0.1", "10.1.2.3", "192.168.0.1", "::1", "0.0.0.0", "fe80::1", "::ffff:10.0.0.1"} {
		_, err := c.Country(context.Background(), addr)
		require.ErrorIs(t, err, geo.ErrPrivateAddress, addr)
	}

	_, err := c.Country(context.Background(), "not-an-ip")
	require.ErrorIs(t, err, geo.ErrInvalidAddress)
	require.Zero(t, hits.Load())
}

func TestClient_RespectsContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	c := geo.New(geo.WithHTTPClient(srv.Client()), geo.WithURL(srv.URL+"/{ip}"))
	_, err := c.Country(ctx, "203.0.113.7")
	require.ErrorIs(t, err, geo.ErrRequest)
}

func TestWithURL_RequiresPlaceholder(t *testing.T) {
	t.Parallel()

	srv, hits := newServer(t, http.StatusOK, `{"country_code":"JP"}`)
	// A template without {ip} is ignored, so the default would be used.
	c := geo.New(geo.WithHTTPClient(srv.Client()), geo.WithURL(srv.URL+"/{ip}"), geo.WithURL(srv.URL))
	country, err := c.Country(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	require.Equal(t, "JP", country)
	require.Equal(t, int32(1), hits.Load())
}

func TestCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	gate := make(chan struct{})
	upstream := resolver.LocatorFunc(func(_ context.Context, addr string) (string, error) {
		calls.Add(1)
		<-gate
		if strings.HasPrefix(addr, "198.") {
			return "", geo.ErrMalformed
		}
		return "JP", nil
	})

	mem := cache.NewMemory[string](cache.WithSweepInterval(0))
	t.Cleanup(func() { _ = mem.Close() })
	c := geo.NewCached(upstream, mem, time.Minute)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.Country(context.Background(), "203.0.113.9")
		}()
	}
	// Let the goroutines pile up on the shared call.
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	for _, r := range results {
		require.Equal(t, "JP", r)
	}
	require.Equal(t, int32(1), calls.Load())

	country, err := c.Country(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	require.Equal(t, "JP", country)
	require.Equal(t, int32(1), calls.Load())

	_, err = c.Country(context.Background(), "198.51.100.1")
	require.ErrorIs(t, err, geo.ErrMalformed)
	_, err = c.Country(context.Background(), "198.51.100.1")
	require.ErrorIs(t, err, geo.ErrMalformed)
	require.Equal(t, int32(3), calls.Load())
}
