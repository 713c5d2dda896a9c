// Package geo maps a client IP address to an ISO 3166 country code through an
// HTTP JSON geolocation service.
//
// The default service is ipapi.co. Any service that answers a GET on a URL
// containing the address with a JSON object works; the URL template and the
// name of the country field are configurable.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"

	"github.com/dmitrymomot/folio/pkg/lang"
)

const (
	DefaultURL   = "https://ipapi.co/{ip}/json/"
	DefaultField = "country_code"

	maxBodySize = 64 << 10
)

var (
	ErrInvalidAddress = errors.New("geo: invalid address")
	ErrPrivateAddress = errors.New("geo: address is not publicly routable")
	ErrRequest        = errors.New("geo: request failed")
	ErrMalformed      = errors.New("geo: malformed response")
)

// Client queries a geolocation service. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	template string
	field    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithURL sets the URL template. "{ip}" is replaced by the address.
func WithURL(template string) Option {
	return func(c *Client) {
		if strings.Contains(template, "{ip}") {
			c.template = template
		}
	}
}

// WithField sets the JSON field holding the country code.
func WithField(field string) Option {
	return func(c *Client) {
		if field != "" {
			c.field = field
		}
	}
}

// New creates a Client for ipapi.co unless options say otherwise.
func New(opts ...Option) *Client {
	c := &Client{
		http:     http.DefaultClient,
		template: DefaultURL,
		field:    DefaultField,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Country returns the upper-case ISO 3166-1 alpha-2 code for addr.
// Non-public addresses are rejected without a request.
func (c *Client) Country(ctx context.Context, addr string) (string, error) {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return "", errors.Join(ErrInvalidAddress, err)
	}
	ip = ip.Unmap()
	if !public(ip) {
		return "", ErrPrivateAddress
	}

	endpoint := strings.ReplaceAll(c.template, "{ip}", url.PathEscape(ip.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Join(ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Join(ErrRequest, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrMalformed, resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return "", errors.Join(ErrMalformed, err)
	}

	raw, ok := body[c.field].(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q missing", ErrMalformed, c.field)
	}
	country := strings.ToUpper(strings.TrimSpace(raw))
	if !lang.IsCountry(country) {
		return "", fmt.Errorf("%w: %q is not a country", ErrMalformed, raw)
	}
	return country, nil
}

func public(ip netip.Addr) bool {
	return ip.IsValid() &&
		!ip.IsLoopback() &&
		!ip.IsPrivate() &&
		!ip.IsUnspecified() &&
		!ip.IsLinkLocalUnicast() &&
		!ip.IsLinkLocalMulticast() &&
		!ip.IsMulticast()
}
