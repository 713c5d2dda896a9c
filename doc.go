// Package folio serves a multilingual portfolio site where every page lives
// under a language segment ("/en", "/ja", "/ko").
//
// The package is a thin public face over the framework core: an App built
// from options, chi routing, a request Context, health endpoints and a
// graceful run loop. The language logic lives in subpackages:
//
//   - pkg/lang: supported languages, path helpers, Accept-Language matching
//   - pkg/resolver: the resolution chain and the per-request Session
//   - pkg/preference: cookie, cache and Postgres preference stores
//   - middlewares: Locale, RequestID and Recover
//   - handlers and views: the pages, the language switch and the JSON API
//
// # Quick Start
//
//	res := resolver.New(resolver.WithLocator(geo.New()))
//	bundle := i18n.MustNew()
//	catalog := content.MustLoad()
//
//	app := folio.New(
//	    folio.WithCookieOptions(folio.WithCookieSecret(secret)),
//	    folio.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Locale(res, bundle),
//	    ),
//	    folio.WithHandlers(
//	        handlers.NewPages(catalog, bundle),
//	        handlers.NewLanguage(),
//	        handlers.NewAPI(),
//	    ),
//	    folio.WithErrorHandler(handlers.ErrorPage(catalog, bundle)),
//	    folio.WithNotFoundHandler(handlers.NotFoundPage(catalog, bundle)),
//	    folio.WithHealthChecks(),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	func (h *Pages) Routes(r folio.Router) {
//	    r.Route("/{lang}", func(r folio.Router) {
//	        r.GET("/", h.home)
//	        r.GET("/about", h.about)
//	    })
//	}
//
// Inside a handler the resolved language is available from the Context:
//
//	func (h *Pages) about(c folio.Context) error {
//	    c.Language()        // lang.Japanese
//	    c.Link("/projects") // "/ja/projects"
//	    c.T("nav_about")    // "自己紹介"
//	    ...
//	}
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM for graceful shutdown. Register cleanup with
// ShutdownHook and one-off setup such as migrations with StartupHook.
package folio
