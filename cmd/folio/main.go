// Command folio serves the multilingual portfolio site.
//
// Configuration is read from the environment; see Config for the variables.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/folio"
	"github.com/dmitrymomot/folio/handlers"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/db"
	"github.com/dmitrymomot/folio/pkg/geo"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/preference"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/resolver"
	"github.com/dmitrymomot/folio/views"
)

// memoryCacheEntries caps the in-process caches.
const memoryCacheEntries = 100_000

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log,
		middlewares.RequestIDExtractor(),
		middlewares.LanguageExtractor(),
	).With(slog.String("component", "folio"))

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// infra collects what run needs to start and stop besides the app.
type infra struct {
	redis   goredis.UniversalClient
	backend preference.Backend
	checks  []folio.HealthOption
	runOpts []folio.RunOption
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	inf := &infra{
		runOpts: []folio.RunOption{
			folio.Logger(log),
			folio.ShutdownTimeout(cfg.ShutdownTimeout),
			folio.ShutdownHook(logger.FlushSentry()),
		},
	}
	if err := inf.connect(ctx, cfg, log); err != nil {
		return err
	}

	res := resolver.New(resolverOptions(cfg, inf, log)...)

	bundle, err := i18n.New(i18n.WithDefault(cfg.Default()))
	if err != nil {
		return err
	}
	catalog, err := content.Load(content.WithDefault(cfg.Default()))
	if err != nil {
		return err
	}

	app := folio.New(appOptions(cfg, inf, res, bundle, catalog, log)...)

	log.Info("starting",
		slog.String("preference_backend", cfg.Backend),
		slog.String("default_language", cfg.Default().String()),
		slog.Bool("geo", cfg.Geo.Enabled),
	)
	return app.Run(cfg.Address, inf.runOpts...)
}

// connect opens the stores the configuration asks for and registers their
// health checks and shutdown hooks.
func (inf *infra) connect(ctx context.Context, cfg Config, log *slog.Logger) error {
	if cfg.Redis.URL != "" {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		inf.redis = client
		inf.checks = append(inf.checks, folio.WithReadinessCheck("redis", redis.Healthcheck(client)))
		inf.runOpts = append(inf.runOpts, folio.ShutdownHook(redis.Shutdown(client)))
	}

	switch cfg.Backend {
	case BackendMemory:
		mem := cache.NewMemory[string](cache.WithMaxEntries(memoryCacheEntries))
		inf.runOpts = append(inf.runOpts, folio.ShutdownHook(func(context.Context) error {
			return mem.Close()
		}))
		inf.backend = preference.NewCache(mem, cfg.PreferenceTTL)

	case BackendRedis:
		store := cache.NewRedis[string](inf.redis, cache.WithPrefix("folio:"))
		inf.backend = preference.NewCache(store, cfg.PreferenceTTL)

	case BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		inf.checks = append(inf.checks, folio.WithReadinessCheck("db", db.Healthcheck(pool)))
		inf.runOpts = append(inf.runOpts,
			folio.StartupHook(func(ctx context.Context) error {
				return db.Migrate(ctx, pool, preference.Migrations(), cfg.DB.MigrationsTable, log)
			}),
			folio.ShutdownHook(db.Shutdown(pool)),
		)
		inf.backend = preference.NewPostgres(pool)
	}
	return nil
}

func resolverOptions(cfg Config, inf *infra, log *slog.Logger) []resolver.Option {
	opts := []resolver.Option{
		resolver.WithDefault(cfg.Default()),
		resolver.WithLogger(log),
	}
	if cfg.Geo.Enabled {
		opts = append(opts,
			resolver.WithLocator(newLocator(cfg.Geo, inf)),
			resolver.WithGeoTimeout(cfg.Geo.GeoTimeout()),
		)
	}
	return opts
}

// newLocator builds the geolocation client behind a cache. Redis is used
// when configured so lookups are shared between instances.
func newLocator(cfg GeoConfig, inf *infra) resolver.Locator {
	opts := []geo.Option{geo.WithHTTPClient(&http.Client{Timeout: cfg.GeoTimeout()})}
	if cfg.URL != "" {
		opts = append(opts, geo.WithURL(cfg.URL))
	}
	if cfg.Field != "" {
		opts = append(opts, geo.WithField(cfg.Field))
	}
	client := geo.New(opts...)

	var store cache.Cache[string]
	if inf.redis != nil {
		store = cache.NewRedis[string](inf.redis, cache.WithPrefix("folio:"))
	} else {
		mem := cache.NewMemory[string](cache.WithMaxEntries(memoryCacheEntries))
		inf.runOpts = append(inf.runOpts, folio.ShutdownHook(func(context.Context) error {
			return mem.Close()
		}))
		store = mem
	}
	return geo.NewCached(client, store, cfg.CacheTTL)
}

func appOptions(
	cfg Config,
	inf *infra,
	res *resolver.Resolver,
	bundle *i18n.Bundle,
	catalog *content.Catalog,
	log *slog.Logger,
) []folio.Option {
	cookieOpts := []folio.CookieOption{folio.WithCookieSecure(cfg.CookieSecure)}
	if cfg.CookieSecret != "" {
		cookieOpts = append(cookieOpts, folio.WithCookieSecret(cfg.CookieSecret))
	} else {
		log.Warn("COOKIE_SECRET is not set, preference cookies are unsigned")
	}

	var localeOpts []middlewares.LocaleOption
	if inf.backend != nil {
		localeOpts = append(localeOpts, middlewares.WithLocaleBackend(inf.backend))
	}

	opts := []folio.Option{
		folio.WithCustomLogger(log),
		folio.WithCookieOptions(cookieOpts...),
		folio.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Locale(res, bundle, localeOpts...),
		),
		folio.WithHandlers(
			handlers.NewPages(catalog, bundle),
			handlers.NewLanguage(),
			handlers.NewAPI(),
		),
		folio.WithErrorHandler(handlers.ErrorPage(catalog, bundle)),
		folio.WithNotFoundHandler(handlers.NotFoundPage(catalog, bundle)),
		folio.WithStaticFiles("/static/", views.Assets, "static"),
		folio.WithHealthChecks(inf.checks...),
	}
	if cfg.TrustProxy {
		opts = append(opts, folio.WithHTTPMiddleware(middleware.RealIP))
	}
	return opts
}
