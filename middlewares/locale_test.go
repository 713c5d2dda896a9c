package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/lang"
	"github.com/dmitrymomot/folio/pkg/preference"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var bundle = i18n.MustNew()

// stateRoutes answers every page with "<code>|<source>|<translated nav_home>".
func stateRoutes(r internal.Router) {
	show := func(c internal.Context) error {
		st, ok := middlewares.GetState(c)
		if !ok {
			return c.String(http.StatusOK, "unresolved")
		}
		return c.String(http.StatusOK, strings.Join([]string{
			st.Code().String(),
			string(st.Preference.Source),
			middlewares.GetTranslator(c).T("nav_home"),
		}, "|"))
	}
	r.GET("/{lang}", show)
	r.GET("/{lang}/*", show)
	r.POST("/{lang}/*", show)
	r.GET("/api/state", show)
	r.GET("/health/live", show)
	r.GET("/lang/{code}", func(c internal.Context) error {
		res, err := middlewares.SwitchLanguage(c, lang.Code(c.Param("code")), c.Query("next"))
		if errors.Is(err, resolver.ErrUnsupported) {
			return internal.ErrNotFound("unknown language")
		}
		if err != nil {
			return err
		}
		return c.Redirect(http.StatusFound, res.Path)
	})
}

func newLocaleApp(res *resolver.Resolver, opts ...middlewares.LocaleOption) *internal.App {
	return internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithMiddleware(middlewares.Locale(res, bundle, opts...)),
		internal.WithHandlers(routes(stateRoutes)),
	)
}

func get(target, acceptLanguage string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	return req
}

func TestLocale_RedirectsPageLoads(t *testing.T) {
	t.Parallel()

	app := newLocaleApp(resolver.New())

	tests := []struct {
		target   string
		accept   string
		location string
	}{
		{target: "/", accept: "ja-JP,ja;q=0.9", location: "/ja"},
		{target: "/blog/3?ref=feed", accept: "ko-KR", location: "/ko/blog/3?ref=feed"},
		{target: "/about", accept: "fr-FR", location: "/en/about"},
		{target: "/fr/about", accept: "ko", location: "/ko/fr/about"},
		{target: "/blog%3Fx", accept: "ja", location: "/ja/blog%3Fx"},
		{target: "/a/../ja/about", accept: "ko", location: "/ja/about"},
		{target: "/ja//about", accept: "ja", location: "/ja/about"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			rec := do(app, get(tt.target, tt.accept))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.ElementsMatch(t, []string{"Accept-Language", "Cookie"}, rec.Header().Values("Vary"))
		})
	}
}

func TestLocale_RoundTripDoesNotRedirectAgain(t *testing.T) {
	t.Parallel()

	app := newLocaleApp(resolver.New())

	first := do(app, get("/projects", "ko-KR"))
	require.Equal(t, http.StatusFound, first.Code)
	location := first.Header().Get("Location")
	require.Equal(t, "/ko/projects", location)

	// The browser follows with the cookie it was given and a different
	// Accept-Language; the URL segment still wins.
	second := do(app, withCookies(get(location, "ja"), first))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "ko|url|홈", second.Body.String())

	// A later unprefixed visit uses the stored preference.
	third := do(app, withCookies(get("/", "ja"), first))
	assert.Equal(t, "/ko", third.Header().Get("Location"))
}

func TestLocale_PrefixedPathIsServed(t *testing.T) {
	t.Parallel()

	app := newLocaleApp(resolver.New())
	rec := do(app, get("/ja/about", "ko"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "ja|url|"))
	assert.Equal(t, "ja", rec.Header().Get("Content-Language"))

	var langCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == resolver.DefaultStoreKey {
			langCookie = c
		}
	}
	require.NotNil(t, langCookie)
	assert.Equal(t, cookie.OneYear, langCookie.MaxAge)
}

func TestLocale_ForgedCookieIgnored(t *testing.T) {
	t.Parallel()

	app := newLocaleApp(resolver.New())
	req := get("/", "ja")
	req.AddCookie(&http.Cookie{Name: resolver.DefaultStoreKey, Value: "ko"})

	rec := do(app, req)
	assert.Equal(t, "/ja", rec.Header().Get("Location"))
}

func TestLocale_NonPageRequests(t *testing.T) {
	t.Parallel()

	app := newLocaleApp(resolver.New())

	t.Run("post is not redirected", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/ko/contact", nil)
		rec := do(app, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "ko|url|"))
	})

	t.Run("skipped prefix is resolved without redirect", func(t *testing.T) {
		t.Parallel()
		rec := do(app, get("/api/state", "ja"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "ja|browser|"))
	})

	t.Run("bypassed prefix is not resolved", func(t *testing.T) {
		t.Parallel()
		rec := do(app, get("/health/live", "ja"))
		assert.Equal(t, "unresolved", rec.Body.String())
		assert.Empty(t, rec.Header().Values("Vary"))
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestLocale_GeoFallback(t *testing.T) {
	t.Parallel()

	var gotAddr string
	locator := resolver.LocatorFunc(func(_ context.Context, addr string) (string, error) {
		gotAddr = addr
		return "JP", nil
	})
	app := newLocaleApp(resolver.New(resolver.WithLocator(locator)))

	req := get("/", "de-DE")
	req.RemoteAddr = "203.0.113.7:52100"
	rec := do(app, req)

	assert.Equal(t, "/ja", rec.Header().Get("Location"))
	assert.Equal(t, "203.0.113.7", gotAddr)
}

func TestLocale_ServerBackend(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory[string]()
	t.Cleanup(func() { _ = mem.Close() })

	app := newLocaleApp(resolver.New(),
		middlewares.WithLocaleBackend(preference.NewCache(mem, 0)),
	)

	first := do(app, get("/", "ko"))
	require.Equal(t, "/ko", first.Header().Get("Location"))

	var names []string
	for _, c := range first.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, preference.VisitorCookie)
	assert.NotContains(t, names, resolver.DefaultStoreKey)

	second := do(app, withCookies(get("/", "ja"), first))
	assert.Equal(t, "/ko", second.Header().Get("Location"))

	stranger := do(app, get("/", "ja"))
	assert.Equal(t, "/ja", stranger.Header().Get("Location"))
}

func TestSwitchLanguage(t *testing.T) {
	t.Parallel()

	app := newLocaleApp(resolver.New())

	t.Run("persists and redirects into the new language", func(t *testing.T) {
		t.Parallel()

		sw := do(app, get("/lang/ja?next=/en/blog/3", "en"))
		require.Equal(t, http.StatusFound, sw.Code)
		assert.Equal(t, "/ja/blog/3", sw.Header().Get("Location"))
		assert.Equal(t, "ja", sw.Header().Get("Content-Language"))

		home := do(app, withCookies(get("/", "en"), sw))
		assert.Equal(t, "/ja", home.Header().Get("Location"))
	})

	t.Run("unsupported code", func(t *testing.T) {
		t.Parallel()

		rec := do(app, get("/lang/de?next=/", "en"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("without locale middleware", func(t *testing.T) {
		t.Parallel()

		var err error
		bare := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/lang/{code}", func(c internal.Context) error {
				_, err = middlewares.SwitchLanguage(c, lang.Korean, "/")
				return c.NoContent(http.StatusNoContent)
			})
		})))

		do(bare, get("/lang/ko", ""))
		assert.ErrorIs(t, err, middlewares.ErrNoSession)
	})
}

func TestLanguageExtractor(t *testing.T) {
	t.Parallel()

	var value string
	app := internal.New(
		internal.WithMiddleware(middlewares.Locale(resolver.New(), bundle)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/{lang}", func(c internal.Context) error {
				if attr, ok := middlewares.LanguageExtractor()(c.Context()); ok {
					value = attr.Value.String()
				}
				return c.NoContent(http.StatusNoContent)
			})
		})),
	)

	do(app, get("/ko", ""))
	assert.Equal(t, "ko", value)
}
