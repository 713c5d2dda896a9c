package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	var attrValue string
	app := internal.New(
		internal.WithMiddleware(middlewares.RequestID()),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				seen = middlewares.GetRequestID(c)
				if attr, ok := middlewares.RequestIDExtractor()(c.Context()); ok {
					attrValue = attr.Value.String()
				}
				return c.NoContent(http.StatusNoContent)
			})
		})),
	)

	t.Run("generates a UUIDv7", func(t *testing.T) {
		rec := do(app, httptest.NewRequest(http.MethodGet, "/", nil))

		id, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.Equal(t, id.String(), seen)
		assert.Equal(t, seen, attrValue)
	})

	t.Run("keeps upstream ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "edge-42")
		rec := do(app, req)

		assert.Equal(t, "edge-42", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "edge-42", seen)
	})
}

func TestRequestID_Options(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error { return c.NoContent(http.StatusNoContent) })
		})),
	)

	rec := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "fixed", rec.Header().Get("X-Trace"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "ignored")
	req.Header.Set("X-Trace", "abc")
	rec = do(app, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Trace"))
}

func TestRequestIDExtractor_Missing(t *testing.T) {
	t.Parallel()

	_, ok := middlewares.RequestIDExtractor()(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
