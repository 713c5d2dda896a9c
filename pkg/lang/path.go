package lang

import "strings"

// RouteState is the language view of a URL path. It is derived, never stored.
type RouteState struct {
	// Lang is the leading language segment, or "" when the path has none.
	Lang Code
	// Remainder is everything after the language segment.
	// For a path with a language segment it is either "" or starts with "/".
	// For a path without one it is the whole (normalized) path.
	Remainder string
}

// HasLang reports whether the path carried a supported language segment.
func (s RouteState) HasLang() bool {
	return s.Lang != ""
}

// Split derives the RouteState of path.
// A first segment that is not a supported code is treated as "no language".
func Split(path string) RouteState {
	path = normalize(path)

	first, rest, _ := strings.Cut(path[1:], "/")
	code, ok := Parse(first)
	if !ok {
		return RouteState{Remainder: path}
	}

	remainder := ""
	if len(path) > len(first)+1 {
		remainder = "/" + rest
	}
	return RouteState{Lang: code, Remainder: remainder}
}

// Segment returns the language segment of path, or "" if it has none.
func Segment(path string) Code {
	return Split(path).Lang
}

// Sync rewrites path so that its leading language segment is code,
// replacing an existing segment or inserting one.
//
// Sync is idempotent, and a path that already starts with code is returned
// unchanged, so following a redirect to Sync's output never redirects again.
func Sync(code Code, path string) string {
	st := Split(path)
	if st.HasLang() {
		return "/" + string(code) + st.Remainder
	}
	if st.Remainder == "/" {
		return "/" + string(code)
	}
	return "/" + string(code) + st.Remainder
}

// Strip removes the language segment from path, returning the logical path.
func Strip(path string) string {
	st := Split(path)
	if !st.HasLang() {
		return st.Remainder
	}
	if st.Remainder == "" {
		return "/"
	}
	return st.Remainder
}

// Localize qualifies a logical link target with code: "/about" becomes
// "/en/about". Query strings and fragments are kept. Absolute URLs,
// protocol-relative URLs, mailto/tel links and fragment-only targets are
// returned unchanged.
func Localize(target string, code Code) string {
	if target == "" {
		return Sync(code, "/")
	}
	if isExternal(target) || strings.HasPrefix(target, "#") {
		return target
	}

	path, suffix := target, ""
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		path, suffix = target[:i], target[i:]
	}
	return Sync(code, path) + suffix
}

// IsLocalPath reports whether target is a same-origin absolute path.
// Used to validate user-supplied redirect targets.
func IsLocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return false
	}
	return !strings.ContainsAny(target, "\\\r\n")
}

func isExternal(target string) bool {
	if strings.HasPrefix(target, "//") {
		return true
	}
	if strings.Contains(target, "://") {
		return true
	}
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:")
}

// normalize guarantees a leading slash. The empty path is the root.
func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		return "/" + path
	}
	return path
}
