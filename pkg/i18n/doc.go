// Package i18n holds the UI strings of the site.
//
// Messages are TOML files named after the language code (locales/en.toml,
// locales/ja.toml, locales/ko.toml) loaded into a go-i18n bundle. A
// Translator is bound to one language; a message missing from it falls back
// to the default language and finally to the message ID:
//
//	b, err := i18n.New()
//	tr := b.Translator(lang.Korean)
//	tr.T("nav_about")                           // "소개"
//	tr.Tn("projects_count", 3, i18n.M{"Count": 3})
//	tr.FormatDate(post.Published)               // "2025년 3월 14일"
package i18n
