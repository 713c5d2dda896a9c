package internal

import (
	"net"
	"strings"
)

// ExtractorSource extracts a value from the request context.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Header(name)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// FromForwardedFor returns a source that reads the left-most address of an
// X-Forwarded-For style header.
func FromForwardedFor(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		first, _, _ := strings.Cut(c.Header(name), ",")
		first = strings.TrimSpace(first)
		if first == "" {
			return "", false
		}
		return first, true
	}
}

// FromRemoteAddr returns a source that reads the host part of the
// connection's remote address.
func FromRemoteAddr() ExtractorSource {
	return func(c Context) (string, bool) {
		addr := c.Request().RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
		if addr == "" {
			return "", false
		}
		return addr, true
	}
}
