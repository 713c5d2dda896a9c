package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/db"
	"github.com/dmitrymomot/folio/pkg/lang"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

// Preference backends.
const (
	BackendCookie   = "cookie"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var (
	ErrUnknownBackend  = errors.New("config: unknown PREFERENCE_BACKEND")
	ErrDefaultLanguage = errors.New("config: DEFAULT_LANGUAGE is not supported")
	ErrMissingRedisURL = errors.New("config: REDIS_URL is required")
	ErrMissingDBURL    = errors.New("config: DATABASE_URL is required")
)

// Config is the process configuration, read from the environment.
type Config struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	CookieSecret    string        `env:"COOKIE_SECRET"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	Backend         string        `env:"PREFERENCE_BACKEND" envDefault:"cookie"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	PreferenceTTL   time.Duration `env:"PREFERENCE_TTL" envDefault:"8760h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	Log   logger.Config
	Geo   GeoConfig
	DB    db.Config
	Redis redis.Config
}

// GeoConfig configures IP geolocation. It is off by default.
type GeoConfig struct {
	URL      string        `env:"GEO_URL"`
	Field    string        `env:"GEO_FIELD"`
	Timeout  time.Duration `env:"GEO_TIMEOUT" envDefault:"2500ms"`
	CacheTTL time.Duration `env:"GEO_CACHE_TTL" envDefault:"24h"`
	Enabled  bool          `env:"GEO_ENABLED" envDefault:"false"`
}

// loadConfig parses the environment and validates the result.
func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other.
func (c Config) Validate() error {
	var errs []error
	if _, ok := lang.Parse(c.DefaultLanguage); !ok {
		errs = append(errs, fmt.Errorf("%w: %q", ErrDefaultLanguage, c.DefaultLanguage))
	}
	if c.CookieSecret != "" {
		if err := cookie.ValidateSecret(c.CookieSecret); err != nil {
			errs = append(errs, fmt.Errorf("config: COOKIE_SECRET: %w", err))
		}
	}
	switch c.Backend {
	case BackendCookie, BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, ErrMissingRedisURL)
		}
	case BackendPostgres:
		if c.DB.URL == "" {
			errs = append(errs, ErrMissingDBURL)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend))
	}
	return errors.Join(errs...)
}

// Default returns the configured default language.
func (c Config) Default() lang.Code {
	if code, ok := lang.Parse(c.DefaultLanguage); ok {
		return code
	}
	return lang.Default
}

// GeoTimeout falls back to the resolver default for non-positive values.
func (c GeoConfig) GeoTimeout() time.Duration {
	if c.Timeout <= 0 {
		return resolver.DefaultGeoTimeout
	}
	return c.Timeout
}
