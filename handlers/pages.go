package handlers

import (
	"net/http"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/lang"
	"github.com/dmitrymomot/folio/views"
)

// Pages serves the localized HTML pages.
type Pages struct {
	catalog *content.Catalog
	bundle  *i18n.Bundle
}

// NewPages creates the page handlers.
func NewPages(catalog *content.Catalog, bundle *i18n.Bundle) *Pages {
	return &Pages{catalog: catalog, bundle: bundle}
}

// Routes registers the pages under "/{lang}".
func (h *Pages) Routes(r internal.Router) {
	r.Route("/{lang}", func(r internal.Router) {
		r.Use(requireLanguage)
		r.GET("/", h.home)
		r.GET("/about", h.about)
		r.GET("/projects", h.projects)
		r.GET("/blog", h.blog)
		r.GET("/blog/{slug}", h.post)
	})
}

// requireLanguage rejects a first segment that is not a supported code.
func requireLanguage(next internal.HandlerFunc) internal.HandlerFunc {
	return func(c internal.Context) error {
		if _, ok := lang.Parse(c.Param("lang")); !ok {
			return internal.ErrNotFound("unsupported language")
		}
		return next(c)
	}
}

func (h *Pages) home(c internal.Context) error {
	p := h.page(c, "")
	return c.Render(http.StatusOK, views.Document(p, views.Home(p)))
}

func (h *Pages) about(c internal.Context) error {
	p := h.page(c, "nav_about")
	return c.Render(http.StatusOK, views.Document(p, views.About(p)))
}

func (h *Pages) projects(c internal.Context) error {
	p := h.page(c, "nav_projects")
	return c.Render(http.StatusOK, views.Document(p, views.Projects(p)))
}

func (h *Pages) blog(c internal.Context) error {
	p := h.page(c, "nav_blog")
	return c.Render(http.StatusOK, views.Document(p, views.Blog(p)))
}

func (h *Pages) post(c internal.Context) error {
	p := h.page(c, "")
	post, ok := h.catalog.Post(p.Lang, c.Param("slug"))
	if !ok {
		return internal.ErrNotFound("post not found")
	}
	p.Title = post.Title
	return c.Render(http.StatusOK, views.Document(p, views.Post(p, post)))
}

// page builds the view model from the URL segment.
func (h *Pages) page(c internal.Context, titleID string) views.Page {
	code, ok := lang.Parse(c.Param("lang"))
	if !ok {
		code = c.Language()
	}
	return newPage(c, h.catalog, h.bundle, code, titleID)
}

func newPage(c internal.Context, catalog *content.Catalog, bundle *i18n.Bundle, code lang.Code, titleID string) views.Page {
	t := middlewares.GetTranslator(c)
	if t == nil || t.Language() != code {
		t = bundle.Translator(code)
	}
	p := views.Page{
		T:    t,
		Site: catalog.Site(code),
		Path: c.Request().URL.Path,
		Lang: code,
	}
	if titleID != "" {
		p.Title = t.T(titleID)
	}
	return p
}
