// Package handlers serves the site's pages, the explicit language switch and
// a small JSON API describing the active language.
//
// Pages live under a language segment ("/ja/about"). They expect the
// middlewares.Locale middleware to have resolved the request; the segment
// in the URL is authoritative for the page language.
//
//	app := folio.New(
//	    folio.WithMiddleware(middlewares.Locale(res, bundle)),
//	    folio.WithHandlers(
//	        handlers.NewPages(catalog, bundle),
//	        handlers.NewLanguage(),
//	        handlers.NewAPI(),
//	    ),
//	    folio.WithErrorHandler(handlers.ErrorPage(catalog, bundle)),
//	    folio.WithNotFoundHandler(handlers.NotFoundPage(catalog, bundle)),
//	)
package handlers
