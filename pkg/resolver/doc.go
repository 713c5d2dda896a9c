// Package resolver decides which language a request is served in and keeps
// the URL in agreement with it.
//
// Signals are tried in a fixed order, and the first one that names a
// supported language wins:
//
//  1. the first URL path segment ("/ja/blog/3")
//  2. the preference persisted in a Store on a previous visit
//  3. the runtime locale list (Accept-Language)
//  4. a geolocation lookup of the client address, bounded by a timeout
//  5. the default language
//
// The winner is written back to the Store on every pass. Store and
// geolocation failures are swallowed; the caller always gets a language.
//
// A Session wraps one visitor's pass and carries it from Unresolved to
// Resolved exactly once:
//
//	s := res.NewSession(store, lang.ParseAcceptLanguage(r.Header.Get("Accept-Language")), ip)
//	result := s.Start(ctx, r.URL.Path)
//	if result.Redirect {
//	    http.Redirect(w, r, result.Path, http.StatusFound)
//	    return
//	}
//
// Because result.Path always starts with the resolved language, a request for
// it resolves from the URL and never redirects again.
package resolver
