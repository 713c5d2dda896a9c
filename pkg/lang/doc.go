// Package lang defines the closed set of languages the site is served in and
// the pure helpers that tie a language to a URL path.
//
// A URL path carries its language as the first segment:
//
//	/ja/blog/3   -> RouteState{Lang: "ja", Remainder: "/blog/3"}
//	/about       -> RouteState{Lang: "",   Remainder: "/about"}
//
// Sync rewrites the segment and is idempotent, so a path produced by Sync
// never triggers a second redirect:
//
//	lang.Sync(lang.Korean, "/")          // "/ko"
//	lang.Sync(lang.Korean, "/en/about")  // "/ko/about"
//
// Localize builds links for templates from logical paths:
//
//	lang.Localize("/projects?tag=go", lang.Japanese) // "/ja/projects?tag=go"
//
// Match and ParseAcceptLanguage turn a browser's locale list into a supported
// Code, and ForCountry maps a geolocated country to one.
package lang
