package i18n_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/lang"
)

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	b, err := i18n.New()
	require.NoError(t, err)

	require.Equal(t, "About", b.Translator(lang.English).T("nav_about"))
	require.Equal(t, "自己紹介", b.Translator(lang.Japanese).T("nav_about"))
	require.Equal(t, "소개", b.Translator(lang.Korean).T("nav_about"))

	t.Run("every language has go_home", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "홈으로 돌아가기", b.Translator(lang.Korean).T("go_home"))
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "no_such_message", b.Translator(lang.Japanese).T("no_such_message"))
	})

	t.Run("unsupported code uses default translator", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, lang.English, b.Translator("fr").Language())
	})

	t.Run("template data", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Published today", b.Translator(lang.English).T("published_on", i18n.M{"Date": "today"}))
	})
}

func TestTranslator_Tn(t *testing.T) {
	t.Parallel()

	b := i18n.MustNew()
	en := b.Translator(lang.English)
	require.Equal(t, "1 project", en.Tn("projects_count", 1))
	require.Equal(t, "4 projects", en.Tn("projects_count", 4))
	require.Equal(t, "프로젝트 4개", b.Translator(lang.Korean).Tn("projects_count", 4))
	require.Equal(t, "4 件のプロジェクト", b.Translator(lang.Japanese).Tn("projects_count", 4))
}

func TestTranslator_FallsBackToDefaultLanguage(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"msgs/en.toml": {Data: []byte("go_home = \"Go home\"\n\n[projects_count]\none = \"{{.Count}} project\"\nother = \"{{.Count}} projects\"\n")},
		"msgs/ja.toml": {Data: []byte(`nav_home = "ホーム"`)},
		"msgs/ko.toml": {Data: []byte(`nav_home = "홈"`)},
	}
	b, err := i18n.New(i18n.WithFS(fsys, "msgs"))
	require.NoError(t, err)

	ko := b.Translator(lang.Korean)
	require.Equal(t, "홈", ko.T("nav_home"))
	require.Equal(t, "Go home", ko.T("go_home"))
	require.Equal(t, "3 projects", ko.Tn("projects_count", 3))
	require.Equal(t, "nav_about", ko.T("nav_about"))
	require.Equal(t, "nav_home", b.Translator(lang.English).T("nav_home"))
}

func TestTranslator_FormatDate(t *testing.T) {
	t.Parallel()

	b := i18n.MustNew()
	d := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "March 14, 2025", b.Translator(lang.English).FormatDate(d))
	require.Equal(t, "2025年3月14日", b.Translator(lang.Japanese).FormatDate(d))
	require.Equal(t, "2025년 3월 14일", b.Translator(lang.Korean).FormatDate(d))
}

func TestNew_MissingFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"msgs/en.toml": {Data: []byte(`nav_home = "Home"`)},
		"msgs/ja.toml": {Data: []byte(`nav_home = "ホーム"`)},
	}
	_, err := i18n.New(i18n.WithFS(fsys, "msgs"))
	require.ErrorIs(t, err, i18n.ErrMissingLocales)
}
