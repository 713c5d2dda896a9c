// Package middlewares provides the HTTP middleware of the site.
//
// # Locale
//
// Locale resolves the language of every request and keeps the URL in
// agreement with it. Page loads whose path lacks the resolved language are
// redirected once; everything else gets the resolver.State and an
// i18n.Translator in its context.
//
//	app := folio.New(
//	    folio.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Locale(res, bundle),
//	    ),
//	)
//
// Preferences are kept in a signed cookie unless a server-side backend is
// configured:
//
//	middlewares.Locale(res, bundle, middlewares.WithLocaleBackend(preference.NewPostgres(pool)))
//
// # Request ID
//
// RequestID assigns a UUIDv7 to each request unless an upstream proxy sent
// one. RequestIDExtractor and LanguageExtractor add request_id and lang to
// every log entry:
//
//	folio.WithLogger(cfg.Log, "web",
//	    middlewares.RequestIDExtractor(),
//	    middlewares.LanguageExtractor(),
//	)
//
// # Recover
//
// Recover converts panics into *PanicError values for the app's ErrorHandler.
package middlewares
