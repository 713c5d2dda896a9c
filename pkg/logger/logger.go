package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config selects output format and verbosity.
type Config struct {
	Env    string       `env:"APP_ENV" envDefault:"production"`
	Level  string       `env:"LOG_LEVEL" envDefault:"info"`
	Sentry SentryConfig
}

// Development reports whether human-readable output was requested.
func (c Config) Development() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// ParseLevel maps a level name to slog.Level. Unknown names yield info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// New creates a logger writing to stdout, decorated with extractors.
// Sentry forwarding is enabled when cfg.Sentry.DSN is set.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	base := newHandler(w, cfg)
	if h, ok := sentryHandler(base, cfg.Sentry); ok {
		base = fanout(base, h)
	}
	return slog.New(Decorate(base, extractors...))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	level := ParseLevel(cfg.Level)
	if cfg.Development() {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
