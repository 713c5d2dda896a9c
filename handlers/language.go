package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/lang"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

// Language handles the explicit language switch.
type Language struct{}

// NewLanguage creates the switch handler.
func NewLanguage() *Language {
	return &Language{}
}

// Routes registers GET /lang/{code}.
func (h *Language) Routes(r internal.Router) {
	r.GET("/lang/{code}", h.switchLanguage)
}

// switchLanguage persists the chosen language and sends the visitor back to
// next in that language. next must be a local path, otherwise "/" is used.
func (h *Language) switchLanguage(c internal.Context) error {
	code, ok := lang.Parse(c.Param("code"))
	if !ok {
		return internal.ErrNotFound("unsupported language")
	}

	next := c.Query("next")
	if !lang.IsLocalPath(next) {
		next = "/"
	}
	path, suffix := next, ""
	if i := strings.IndexAny(next, "?#"); i >= 0 {
		path, suffix = next[:i], next[i:]
	}

	res, err := middlewares.SwitchLanguage(c, code, path)
	switch {
	case errors.Is(err, resolver.ErrUnsupported):
		return internal.ErrNotFound("unsupported language")
	case err != nil:
		return err
	}

	c.LogInfo("language switched", "lang", code.String(), "next", res.Path)
	return c.Redirect(http.StatusFound, res.Path+suffix)
}
