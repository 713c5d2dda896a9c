package views

import (
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/lang"
)

// Page carries what every view needs to render in one language.
type Page struct {
	T    *i18n.Translator
	Site *content.Site
	// Title is the page title, without the site name.
	Title string
	// Path is the current URL path including the language segment.
	Path string
	Lang lang.Code
}

// Link localizes a logical path for the page language.
func (p Page) Link(target string) string {
	return lang.Localize(target, p.Lang)
}

// SwitchURL is the language switcher target for code. It returns the
// visitor to the current page.
func (p Page) SwitchURL(code lang.Code) string {
	return "/lang/" + code.String() + "?next=" + url.QueryEscape(p.Path)
}

func (p Page) siteTitle() string {
	if p.Site == nil {
		return ""
	}
	return p.Site.Title
}

// writer accumulates the first write error so markup can be emitted
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}
