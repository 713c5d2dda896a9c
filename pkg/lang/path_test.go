package lang_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/lang"
)

var samplePaths = []string{
	"/",
	"",
	"/about",
	"/about/",
	"/en",
	"/en/",
	"/ja/blog/3",
	"/ko/projects?x",
	"/fr/about",
	"/kobe/travel",
	"/EN/about",
	"blog",
	"/blog/en",
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want lang.RouteState
	}{
		{"/", lang.RouteState{Remainder: "/"}},
		{"", lang.RouteState{Remainder: "/"}},
		{"/en", lang.RouteState{Lang: lang.English, Remainder: ""}},
		{"/en/", lang.RouteState{Lang: lang.English, Remainder: "/"}},
		{"/ja/blog/3", lang.RouteState{Lang: lang.Japanese, Remainder: "/blog/3"}},
		{"/fr/about", lang.RouteState{Remainder: "/fr/about"}},
		{"/kobe", lang.RouteState{Remainder: "/kobe"}},
		{"/EN/about", lang.RouteState{Remainder: "/EN/about"}},
		{"about", lang.RouteState{Remainder: "/about"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, lang.Split(tt.path))
		})
	}
}

func TestSync(t *testing.T) {
	t.Parallel()

	t.Run("inserts segment", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "/ko", lang.Sync(lang.Korean, "/"))
		require.Equal(t, "/ko", lang.Sync(lang.Korean, ""))
		require.Equal(t, "/en/about", lang.Sync(lang.English, "/about"))
		require.Equal(t, "/ja/fr/about", lang.Sync(lang.Japanese, "/fr/about"))
	})

	t.Run("replaces segment", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "/ko/about", lang.Sync(lang.Korean, "/en/about"))
		require.Equal(t, "/ja", lang.Sync(lang.Japanese, "/ko"))
		require.Equal(t, "/ja/", lang.Sync(lang.Japanese, "/ko/"))
	})

	t.Run("idempotent for every code and path", func(t *testing.T) {
		t.Parallel()
		for _, code := range lang.Codes() {
			for _, p := range samplePaths {
				once := lang.Sync(code, p)
				require.Equal(t, once, lang.Sync(code, once), "code=%s path=%q", code, p)
			}
		}
	})

	t.Run("path already carrying code is unchanged", func(t *testing.T) {
		t.Parallel()
		for _, code := range lang.Codes() {
			for _, p := range samplePaths {
				synced := lang.Sync(code, p)
				require.Equal(t, code, lang.Segment(synced))
				require.Equal(t, synced, lang.Sync(lang.Segment(synced), synced))
			}
		}
	})
}

func TestStrip(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/", lang.Strip("/en"))
	require.Equal(t, "/", lang.Strip("/en/"))
	require.Equal(t, "/blog/3", lang.Strip("/ja/blog/3"))
	require.Equal(t, "/about", lang.Strip("/about"))
}

func TestLocalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		code   lang.Code
		want   string
	}{
		{"/about", lang.English, "/en/about"},
		{"/", lang.Japanese, "/ja"},
		{"", lang.Korean, "/ko"},
		{"/blog?page=2", lang.Korean, "/ko/blog?page=2"},
		{"/projects#go", lang.Japanese, "/ja/projects#go"},
		{"/en/about", lang.Japanese, "/ja/about"},
		{"https://github.com/dmitrymomot", lang.Japanese, "https://github.com/dmitrymomot"},
		{"//cdn.example.com/a.js", lang.Japanese, "//cdn.example.com/a.js"},
		{"mailto:hi@example.com", lang.Korean, "mailto:hi@example.com"},
		{"#top", lang.Korean, "#top"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, lang.Localize(tt.target, tt.code))
		})
	}
}

func TestIsLocalPath(t *testing.T) {
	t.Parallel()

	require.True(t, lang.IsLocalPath("/en/about"))
	require.True(t, lang.IsLocalPath("/"))
	require.False(t, lang.IsLocalPath("//evil.com"))
	require.False(t, lang.IsLocalPath("https://evil.com"))
	require.False(t, lang.IsLocalPath("/\\evil.com"))
	require.False(t, lang.IsLocalPath("about"))
	require.False(t, lang.IsLocalPath(""))
}
