package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// countries maps ISO 3166-1 alpha-2 codes to the language served to visitors
// located there. Countries missing from the table do not resolve.
var countries = map[string]Code{
	"JP": Japanese,
	"KR": Korean,
	"US": English,
	"GB": English,
	"CA": English,
	"AU": English,
	"NZ": English,
	"IE": English,
}

// ForCountry maps a country code reported by a geolocation service to a
// supported language. Input is case-insensitive; numeric UN M.49 codes are
// canonicalized by x/text.
func ForCountry(country string) (Code, bool) {
	region, err := language.ParseRegion(strings.TrimSpace(country))
	if err != nil {
		return "", false
	}
	code, ok := countries[region.String()]
	return code, ok
}

// IsCountry reports whether s is a well-formed ISO 3166 country code.
func IsCountry(s string) bool {
	region, err := language.ParseRegion(strings.TrimSpace(s))
	return err == nil && region.IsCountry()
}
