package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	app := New()
	ctxFor := func(setup func(r *http.Request)) Context {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "198.51.100.4:5123"
		setup(r)
		return newContext(httptest.NewRecorder(), r, app)
	}

	client := NewExtractor(
		FromForwardedFor("X-Forwarded-For"),
		FromHeader("X-Real-IP"),
		FromRemoteAddr(),
	)

	t.Run("first source wins", func(t *testing.T) {
		t.Parallel()
		c := ctxFor(func(r *http.Request) {
			r.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
			r.Header.Set("X-Real-IP", "192.0.2.1")
		})
		v, ok := client.Extract(c)
		assert.True(t, ok)
		assert.Equal(t, "203.0.113.7", v)
	})

	t.Run("falls through empty sources", func(t *testing.T) {
		t.Parallel()
		c := ctxFor(func(r *http.Request) {
			r.Header.Set("X-Real-IP", "192.0.2.1")
		})
		v, _ := client.Extract(c)
		assert.Equal(t, "192.0.2.1", v)
	})

	t.Run("remote address without port", func(t *testing.T) {
		t.Parallel()
		v, ok := client.Extract(ctxFor(func(*http.Request) {}))
		assert.True(t, ok)
		assert.Equal(t, "198.51.100.4", v)
	})

	t.Run("no sources", func(t *testing.T) {
		t.Parallel()
		_, ok := NewExtractor().Extract(ctxFor(func(*http.Request) {}))
		assert.False(t, ok)
	})
}
