package resolver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/folio/pkg/lang"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// DefaultGeoTimeout bounds a single geolocation lookup.
const DefaultGeoTimeout = 2500 * time.Millisecond

// DefaultStoreKey is the key the resolved language is persisted under.
const DefaultStoreKey = "lang"

var (
	// ErrNotFound is returned by a Store when the key holds no value.
	ErrNotFound = errors.New("resolver: preference not found")
	// ErrUnsupported is returned when switching to a language outside the supported set.
	ErrUnsupported = errors.New("resolver: unsupported language")
)

// Store persists the language preference across visits.
// Get returns ErrNotFound for an absent key; any other error marks the
// store unavailable for the rest of the resolution pass.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Locator reports the ISO 3166 country of a client address.
// It is best-effort: every error falls through to the default language.
type Locator interface {
	Country(ctx context.Context, addr string) (string, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context, addr string) (string, error)

func (f LocatorFunc) Country(ctx context.Context, addr string) (string, error) {
	return f(ctx, addr)
}

// Request carries the signals of one resolution pass.
type Request struct {
	// Store may be nil when persistence is unavailable.
	Store Store
	// Path is the request URL path.
	Path string
	// Addr is the client IP used for geolocation.
	Addr string
	// Locales is the runtime locale list, most preferred first.
	Locales []string
}

// Resolver picks the single authoritative language for a request.
// It holds no per-request state and is safe for concurrent use.
type Resolver struct {
	locator    Locator
	logger     *slog.Logger
	fallback   lang.Code
	storeKey   string
	geoTimeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDefault sets the language used when every other signal misses.
// Unsupported codes are ignored.
func WithDefault(code lang.Code) Option {
	return func(r *Resolver) {
		if code.IsSupported() {
			r.fallback = code
		}
	}
}

// WithLocator enables the geolocation step.
func WithLocator(l Locator) Option {
	return func(r *Resolver) {
		r.locator = l
	}
}

// WithGeoTimeout bounds the geolocation step.
func WithGeoTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.geoTimeout = d
		}
	}
}

// WithStoreKey changes the persisted preference key.
func WithStoreKey(key string) Option {
	return func(r *Resolver) {
		if key != "" {
			r.storeKey = key
		}
	}
}

// WithLogger sets the logger used for debug traces of each pass.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Resolver. Without options it resolves URL, store and
// runtime locale, then falls back to English.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		fallback:   lang.Default,
		storeKey:   DefaultStoreKey,
		geoTimeout: DefaultGeoTimeout,
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns the fallback language.
func (r *Resolver) Default() lang.Code {
	return r.fallback
}

// Resolve runs the chain URL segment → stored preference → runtime locale →
// geolocation → default and persists the winner. It never fails; the worst
// outcome is the default language.
func (r *Resolver) Resolve(ctx context.Context, req Request) lang.Preference {
	pref, storeOK := r.detect(ctx, req)
	if storeOK {
		r.persist(ctx, req.Store, pref.Code)
	}
	r.logger.DebugContext(ctx, "language resolved",
		slog.String("lang", pref.Code.String()),
		slog.String("source", string(pref.Source)),
		slog.String("path", req.Path),
	)
	return pref
}

// detect returns the preference and whether the store is usable for writing.
func (r *Resolver) detect(ctx context.Context, req Request) (lang.Preference, bool) {
	if code := lang.Segment(req.Path); code != "" {
		return lang.Preference{Code: code, Source: lang.SourceURL}, req.Store != nil
	}

	code, storeOK := r.stored(ctx, req.Store)
	if code != "" {
		return lang.Preference{Code: code, Source: lang.SourceStored}, storeOK
	}

	if code, ok := lang.Match(req.Locales); ok {
		return lang.Preference{Code: code, Source: lang.SourceBrowser}, storeOK
	}

	if code, ok := r.geolocate(ctx, req.Addr); ok {
		return lang.Preference{Code: code, Source: lang.SourceGeo}, storeOK
	}

	return lang.Preference{Code: r.fallback, Source: lang.SourceDefault}, storeOK
}

func (r *Resolver) stored(ctx context.Context, store Store) (lang.Code, bool) {
	if store == nil {
		return "", false
	}
	v, err := store.Get(ctx, r.storeKey)
	switch {
	case errors.Is(err, ErrNotFound):
		return "", true
	case err != nil:
		r.logger.DebugContext(ctx, "preference store unavailable", slog.String("error", err.Error()))
		return "", false
	}
	code, _ := lang.Parse(v)
	return code, true
}

func (r *Resolver) persist(ctx context.Context, store Store, code lang.Code) {
	if store == nil {
		return
	}
	if err := store.Set(ctx, r.storeKey, code.String()); err != nil {
		r.logger.DebugContext(ctx, "preference not persisted", slog.String("error", err.Error()))
	}
}

type geoAnswer struct {
	err     error
	country string
}

// geolocate asks the locator once, giving up at the timeout even if the
// locator ignores its context.
func (r *Resolver) geolocate(ctx context.Context, addr string) (lang.Code, bool) {
	if r.locator == nil || addr == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, r.geoTimeout)
	defer cancel()

	answer := make(chan geoAnswer, 1)
	go func() {
		country, err := r.locator.Country(ctx, addr)
		answer <- geoAnswer{country: country, err: err}
	}()

	select {
	case <-ctx.Done():
		r.logger.DebugContext(ctx, "geolocation gave up", slog.String("error", ctx.Err().Error()))
		return "", false
	case a := <-answer:
		if a.err != nil {
			r.logger.DebugContext(ctx, "geolocation failed", slog.String("error", a.err.Error()))
			return "", false
		}
		return lang.ForCountry(a.country)
	}
}
