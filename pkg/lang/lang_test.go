package lang_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/lang"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, code := range lang.Codes() {
		got, ok := lang.Parse(string(code))
		require.True(t, ok)
		require.Equal(t, code, got)
	}

	for _, s := range []string{"", "fr", "EN", "en-US", "jp", " en"} {
		_, ok := lang.Parse(s)
		require.False(t, ok, "%q must not parse", s)
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	all := lang.All()
	require.Len(t, all, 3)
	require.Equal(t, lang.English, all[0].Code)

	all[0].DisplayName = "changed"
	info, ok := lang.Lookup(lang.English)
	require.True(t, ok)
	require.Equal(t, "English", info.DisplayName)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		locales []string
		want    lang.Code
		ok      bool
	}{
		{"region tag", []string{"ja-JP"}, lang.Japanese, true},
		{"first supported wins", []string{"fr-FR", "ko-KR", "en-US"}, lang.Korean, true},
		{"bare code", []string{"en"}, lang.English, true},
		{"none supported", []string{"fr-FR", "de-DE"}, "", false},
		{"wildcard and garbage skipped", []string{"*", "!!", "ko"}, lang.Korean, true},
		{"undetermined skipped", []string{"und"}, "", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := lang.Match(tt.locales)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	t.Run("orders by quality", func(t *testing.T) {
		t.Parallel()
		locales := lang.ParseAcceptLanguage("fr;q=0.5, ko-KR;q=0.9, de")
		require.Equal(t, []string{"de", "ko-KR", "fr"}, locales)
	})

	t.Run("malformed entry is skipped", func(t *testing.T) {
		t.Parallel()
		locales := lang.ParseAcceptLanguage("fr-FR;q=abc,de;q=0.5,ja;q=0.8")
		require.Equal(t, []string{"ja", "de"}, locales)

		code, ok := lang.Match(locales)
		require.True(t, ok)
		require.Equal(t, lang.Japanese, code)
	})

	t.Run("nothing parses", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, lang.ParseAcceptLanguage("x;q=abc"))
	})

	t.Run("empty header", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, lang.ParseAcceptLanguage(""))
	})

	t.Run("feeds Match", func(t *testing.T) {
		t.Parallel()
		code, ok := lang.Match(lang.ParseAcceptLanguage("de-DE,de;q=0.9,ja;q=0.8"))
		require.True(t, ok)
		require.Equal(t, lang.Japanese, code)
	})
}

func TestForCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		country string
		want    lang.Code
		ok      bool
	}{
		{"KR", lang.Korean, true},
		{"kr", lang.Korean, true},
		{"JP", lang.Japanese, true},
		{"US", lang.English, true},
		{"DE", "", false},
		{"", "", false},
		{"not-a-country", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			t.Parallel()
			got, ok := lang.ForCountry(tt.country)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIsCountry(t *testing.T) {
	t.Parallel()

	require.True(t, lang.IsCountry("KR"))
	require.True(t, lang.IsCountry("de"))
	require.False(t, lang.IsCountry("Korea"))
	require.False(t, lang.IsCountry(""))
}
