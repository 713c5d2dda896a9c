// Package internal provides the core types and implementation behind the
// folio package.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/folio" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: HTTP routing, middleware, health endpoints and graceful shutdown
//   - Context: request/response access plus the resolved language state
//   - Router: interface handlers use to declare routes
//   - Handler: types that declare routes on a Router
//   - HandlerFunc: route handlers that return errors
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned from handlers
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *API) resolution(c folio.Context) error {
//	    country, err := locator.Country(c, clientIP)
//	    ...
//	}
//
// # Language
//
// The Locale middleware stores a resolver.State under LanguageKey and an
// i18n.Translator under TranslatorKey. Context reads both back through
// Language, LanguageState, Link, T, Tn and FormatDate. Without the
// middleware these fall back to the default language and message IDs.
//
// # Running
//
//	err := app.Run(":8080",
//	    folio.StartupHook(migrate),
//	    folio.ShutdownHook(db.Shutdown(pool)),
//	)
//
// Run executes startup hooks, serves until SIGINT or SIGTERM, then shuts the
// server down and runs shutdown hooks in registration order.
package internal
