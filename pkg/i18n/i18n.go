package i18n

import (
	"embed"
	"errors"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/folio/pkg/lang"
)

//go:embed locales/*.toml
var embedded embed.FS

var (
	ErrLoadMessages   = errors.New("i18n: failed to load message file")
	ErrMissingLocales = errors.New("i18n: no message file for language")
)

// M carries template data for a message.
type M = map[string]any

// Bundle is the loaded set of messages. It is immutable and safe for
// concurrent use.
type Bundle struct {
	bundle      *goi18n.Bundle
	translators map[lang.Code]*Translator
	fallback    lang.Code
}

type config struct {
	fsys     fs.FS
	dir      string
	fallback lang.Code
}

// Option configures New.
type Option func(*config)

// WithFS loads message files from dir inside fsys instead of the embedded set.
func WithFS(fsys fs.FS, dir string) Option {
	return func(c *config) {
		c.fsys = fsys
		c.dir = dir
	}
}

// WithDefault sets the fallback language.
func WithDefault(code lang.Code) Option {
	return func(c *config) {
		if code.IsSupported() {
			c.fallback = code
		}
	}
}

// New loads one message file per supported language.
func New(opts ...Option) (*Bundle, error) {
	cfg := &config{fsys: embedded, dir: "locales", fallback: lang.Default}
	for _, opt := range opts {
		opt(cfg)
	}

	bundle := goi18n.NewBundle(language.Make(cfg.fallback.String()))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, code := range lang.Codes() {
		file := path.Join(cfg.dir, code.String()+".toml")
		if _, err := fs.Stat(cfg.fsys, file); err != nil {
			return nil, errors.Join(ErrMissingLocales, err)
		}
		if _, err := bundle.LoadMessageFileFS(cfg.fsys, file); err != nil {
			return nil, errors.Join(ErrLoadMessages, err)
		}
	}

	b := &Bundle{
		bundle:      bundle,
		fallback:    cfg.fallback,
		translators: make(map[lang.Code]*Translator, len(lang.Codes())),
	}
	def := goi18n.NewLocalizer(bundle, cfg.fallback.String())
	for _, code := range lang.Codes() {
		tr := &Translator{
			code:      code,
			localizer: goi18n.NewLocalizer(bundle, code.String()),
			format:    formatFor(code),
		}
		if code != cfg.fallback {
			tr.fallback = def
		}
		b.translators[code] = tr
	}
	return b, nil
}

// MustNew is New for package-level initialization.
func MustNew(opts ...Option) *Bundle {
	b, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Translator returns the translator for code, or the fallback language's
// translator for an unsupported code.
func (b *Bundle) Translator(code lang.Code) *Translator {
	if tr, ok := b.translators[code]; ok {
		return tr
	}
	return b.translators[b.fallback]
}

// Default returns the fallback language.
func (b *Bundle) Default() lang.Code {
	return b.fallback
}
