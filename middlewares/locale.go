package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/lang"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/preference"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

// sessionKey is the context key for the request's resolver.Session.
type sessionKey struct{}

var (
	// DefaultLocaleSkip lists prefixes that are resolved but never redirected.
	DefaultLocaleSkip = []string{"/api", "/lang"}
	// DefaultLocaleBypass lists prefixes the middleware leaves untouched.
	DefaultLocaleBypass = []string{"/health", "/static"}
)

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	// Backend is the server-side preference store. Nil keeps the preference
	// in a cookie.
	Backend preference.Backend
	// Address extracts the client IP used for geolocation.
	Address internal.Extractor
	Skip    []string
	Bypass  []string
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleBackend stores preferences server-side, keyed by visitor ID.
func WithLocaleBackend(b preference.Backend) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Backend = b
	}
}

// WithLocaleAddress sets the client address extractor.
func WithLocaleAddress(ext internal.Extractor) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Address = ext
	}
}

// WithLocaleSkip replaces the prefixes that are never redirected.
func WithLocaleSkip(prefixes ...string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Skip = prefixes
	}
}

// WithLocaleBypass replaces the prefixes that are not resolved at all.
func WithLocaleBypass(prefixes ...string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Bypass = prefixes
	}
}

// Locale returns middleware that resolves the request language.
//
// A GET or HEAD page request whose path does not carry the resolved
// language is answered with a 302 to the synced path, query preserved.
// Otherwise the resolver.State and an i18n.Translator are stored in the
// context for handlers and views, and the response carries a
// Content-Language header for the language in effect when it is written.
func Locale(res *resolver.Resolver, bundle *i18n.Bundle, opts ...LocaleOption) internal.Middleware {
	cfg := &LocaleConfig{
		Address: internal.NewExtractor(internal.FromRemoteAddr()),
		Skip:    DefaultLocaleSkip,
		Bypass:  DefaultLocaleBypass,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if hasPrefix(r.URL.Path, cfg.Bypass) {
				return next(c)
			}

			addr, _ := cfg.Address.Extract(c)
			session := res.NewSession(
				cfg.store(c),
				lang.ParseAcceptLanguage(c.Header("Accept-Language")),
				addr,
			)
			escaped := r.URL.EscapedPath()
			reqPath := cleanPath(escaped)
			result := session.Start(c, reqPath)

			h := c.Response().Header()
			h.Add("Vary", "Accept-Language")
			h.Add("Vary", "Cookie")

			redirect := result.Redirect || reqPath != escaped
			if redirect && isPageLoad(r) && !hasPrefix(r.URL.Path, cfg.Skip) {
				target := result.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				return c.Redirect(http.StatusFound, target)
			}

			state, _ := session.State()
			c.Set(sessionKey{}, session)
			c.Set(internal.LanguageKey{}, state)
			c.Set(internal.TranslatorKey{}, bundle.Translator(state.Code()))

			// SwitchLanguage may change the state before the response starts.
			c.ResponseWriter().OnBeforeWrite(func() {
				if st, ok := session.State(); ok {
					h.Set("Content-Language", st.Code().String())
				}
			})

			return next(c)
		}
	}
}

func (cfg *LocaleConfig) store(c internal.Context) resolver.Store {
	if cfg.Backend != nil {
		return preference.NewServer(cfg.Backend, c.Cookies(), c.Response(), c.Request())
	}
	return preference.NewCookie(c.Cookies(), c.Response(), c.Request())
}

// cleanPath resolves dot segments of an escaped path, keeping a trailing
// slash.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}

func isPageLoad(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

func hasPrefix(reqPath string, prefixes []string) bool {
	for _, p := range prefixes {
		if reqPath == p || strings.HasPrefix(reqPath, p+"/") {
			return true
		}
	}
	return false
}

// GetState returns the resolved language state.
func GetState(c internal.Context) (resolver.State, bool) {
	return c.LanguageState()
}

// GetLanguage returns the resolved language, or the default language when
// the Locale middleware did not run.
func GetLanguage(c internal.Context) lang.Code {
	return c.Language()
}

// GetTranslator returns the request Translator.
// Returns nil if the Locale middleware is not used.
func GetTranslator(c internal.Context) *i18n.Translator {
	return internal.ContextValue[*i18n.Translator](c, internal.TranslatorKey{})
}

// SwitchLanguage persists code as the visitor's explicit choice and returns
// where to send them: next rewritten into code. It fails with
// resolver.ErrUnsupported for unknown codes and with ErrNoSession when the
// Locale middleware did not run for the request.
func SwitchLanguage(c internal.Context, code lang.Code, next string) (resolver.Result, error) {
	session := internal.ContextValue[*resolver.Session](c, sessionKey{})
	if session == nil {
		return resolver.Result{}, ErrNoSession
	}
	result, err := session.Switch(c, code, next)
	if err != nil {
		return resolver.Result{}, err
	}

	state, _ := session.State()
	c.Set(internal.LanguageKey{}, state)
	return result, nil
}

// LanguageExtractor returns a ContextExtractor for use with WithLogger.
// Adds "lang" to log entries of resolved requests.
func LanguageExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if st, ok := ctx.Value(internal.LanguageKey{}).(resolver.State); ok {
			return slog.String("lang", st.Code().String()), true
		}
		return slog.Attr{}, false
	}
}
