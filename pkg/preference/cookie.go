package preference

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

// Cookie is a per-request store over the language cookie. Values are
// signed when the manager has a secret.
type Cookie struct {
	manager *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
}

// NewCookie binds a store to one request/response pair.
func NewCookie(m *cookie.Manager, w http.ResponseWriter, r *http.Request) *Cookie {
	return &Cookie{manager: m, w: w, r: r}
}

// Get returns resolver.ErrNotFound for a missing or forged cookie.
func (c *Cookie) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.written[key]; ok {
		return v, nil
	}
	v, err := c.manager.Read(c.r, key)
	switch {
	case errors.Is(err, cookie.ErrNotFound), errors.Is(err, cookie.ErrBadSig):
		return "", resolver.ErrNotFound
	case err != nil:
		return "", err
	}
	return v, nil
}

// Set writes a one-year cookie. Headers already sent make it a no-op on the
// wire, but later Gets in the same request still see the value.
func (c *Cookie) Set(_ context.Context, key, value string) error {
	if err := c.manager.Write(c.w, key, value, cookie.OneYear); err != nil {
		return err
	}
	if c.written == nil {
		c.written = make(map[string]string, 1)
	}
	c.written[key] = value
	return nil
}
