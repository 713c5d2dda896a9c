// Package views renders the site's HTML pages as templ components.
//
// Every page is wrapped in Document, which emits the html lang attribute,
// hreflang alternates for each supported language, the localized navigation
// and the language switcher. Links go through lang.Localize so they always
// carry the active language segment.
//
//	page := views.Page{Lang: code, Path: r.URL.Path, Title: "About", T: tr, Site: site}
//	return c.Render(http.StatusOK, views.Document(page, views.About(page)))
package views
