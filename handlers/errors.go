package handlers

import (
	"net/http"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/views"
)

// ErrorPage returns an error handler that renders HTTP errors as localized
// pages. API requests get JSON instead. Unexpected errors are logged and
// shown as a generic 500.
func ErrorPage(catalog *content.Catalog, bundle *i18n.Bundle) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		code := http.StatusInternalServerError
		message := http.StatusText(code)
		if httpErr := internal.AsHTTPError(err); httpErr != nil {
			code = httpErr.StatusCode()
			message = httpErr.Message
		}
		if code >= http.StatusInternalServerError {
			c.LogError("request failed", "error", err, "status", code)
		}

		if isAPI(c.Request()) {
			return c.JSON(code, apiError{Error: message})
		}

		if code == http.StatusNotFound {
			p := newPage(c, catalog, bundle, c.Language(), "not_found_title")
			return c.Render(code, views.Document(p, views.NotFound(p)))
		}
		p := newPage(c, catalog, bundle, c.Language(), "error_title")
		return c.Render(code, views.Document(p, views.Error(p)))
	}
}

// NotFoundPage renders the localized 404 page for unmatched routes.
func NotFoundPage(catalog *content.Catalog, bundle *i18n.Bundle) internal.HandlerFunc {
	render := ErrorPage(catalog, bundle)
	return func(c internal.Context) error {
		return render(c, internal.ErrNotFound("page not found"))
	}
}
