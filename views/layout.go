package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/pkg/lang"
)

var navItems = []struct {
	path string
	id   string
}{
	{path: "/", id: "nav_home"},
	{path: "/about", id: "nav_about"},
	{path: "/projects", id: "nav_projects"},
	{path: "/blog", id: "nav_blog"},
}

// Document renders body inside Layout.
func Document(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Layout(p).Render(templ.WithChildren(ctx, body), w)
	})
}

// Layout is the page shell. The children from the context are rendered
// inside <main>.
func Layout(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		logical := lang.Strip(p.Path)

		out.raw("<!DOCTYPE html>\n<html")
		out.attr("lang", p.Lang.String())
		out.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		switch {
		case p.Title == "":
			out.text(p.siteTitle())
		case p.siteTitle() == "":
			out.text(p.Title)
		default:
			out.text(p.Title + " | " + p.siteTitle())
		}
		out.raw("</title>")

		for _, code := range lang.Codes() {
			out.raw(`<link rel="alternate"`)
			out.attr("hreflang", code.String())
			out.attr("href", lang.Localize(logical, code))
			out.raw(">")
		}
		out.raw(`<link rel="alternate" hreflang="x-default"`)
		out.attr("href", logical)
		out.raw(`><link rel="stylesheet" href="/static/site.css"></head><body>`)

		out.raw(`<a class="skip" href="#main">`)
		out.text(p.T.T("skip_to_content"))
		out.raw(`</a><header><nav class="site-nav">`)
		for _, item := range navItems {
			out.raw("<a")
			out.attr("href", p.Link(item.path))
			if logical == item.path {
				out.raw(` aria-current="page"`)
			}
			out.raw(">")
			out.text(p.T.T(item.id))
			out.raw("</a>")
		}
		out.raw("</nav>")
		switcher(out, p)
		out.raw(`</header><main id="main">`)
		if out.err != nil {
			return out.err
		}

		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}

		out.raw("</main><footer><p>&copy; ")
		out.text(p.siteTitle())
		out.raw(". ")
		out.text(p.T.T("footer_rights"))
		out.raw("</p></footer></body></html>\n")
		return out.err
	})
}

func switcher(out *writer, p Page) {
	out.raw(`<nav class="lang-switcher"`)
	out.attr("aria-label", p.T.T("language_label"))
	out.raw("><ul>")
	for _, info := range lang.All() {
		out.raw("<li><a")
		out.attr("href", p.SwitchURL(info.Code))
		out.attr("hreflang", info.Code.String())
		out.attr("lang", info.Code.String())
		out.attr("title", info.RegionLabel)
		if info.Code == p.Lang {
			out.raw(` aria-current="true"`)
		}
		out.raw(">")
		out.text(info.DisplayName)
		out.raw("</a></li>")
	}
	out.raw("</ul></nav>")
}
