// Package logger builds the application's slog.Logger.
//
// Production output is JSON on stdout. In development the handler is
// tint's colored text handler. When a Sentry DSN is configured, records at
// warning level and above are also forwarded to Sentry, and errors become
// Sentry issues.
//
// Request-scoped values are added through extractors that run on every
// record:
//
//	log := logger.New(logger.Config{Env: "production", Level: "info"},
//	    middlewares.RequestIDExtractor(),
//	    middlewares.LanguageExtractor(),
//	)
//	log.InfoContext(ctx, "page rendered")
//	// {"level":"INFO","msg":"page rendered","request_id":"...","lang":"ja"}
package logger
