package lang

import "slices"

// Code is a supported language code. The zero value means "no language".
type Code string

// Supported language codes.
const (
	English  Code = "en"
	Japanese Code = "ja"
	Korean   Code = "ko"
)

// Default is the language used when no other signal resolves.
const Default = English

// Info describes a supported language for display in UI surfaces.
type Info struct {
	Code        Code   `json:"code"`
	DisplayName string `json:"display_name"`
	RegionLabel string `json:"region_label"`
}

// supported is the fixed table of languages served by the site.
// Order defines the order of language switchers and API listings.
var supported = []Info{
	{Code: English, DisplayName: "English", RegionLabel: "United States"},
	{Code: Japanese, DisplayName: "日本語", RegionLabel: "日本"},
	{Code: Korean, DisplayName: "한국어", RegionLabel: "대한민국"},
}

// All returns a copy of the supported languages table.
func All() []Info {
	return slices.Clone(supported)
}

// Codes returns the supported codes in table order.
func Codes() []Code {
	codes := make([]Code, len(supported))
	for i, info := range supported {
		codes[i] = info.Code
	}
	return codes
}

// Parse returns the Code for s if s is exactly one of the supported codes.
// Matching is case-sensitive: URL segments are canonical lower-case.
func Parse(s string) (Code, bool) {
	for _, info := range supported {
		if string(info.Code) == s {
			return info.Code, true
		}
	}
	return "", false
}

// Lookup returns the table entry for c.
func Lookup(c Code) (Info, bool) {
	for _, info := range supported {
		if info.Code == c {
			return info, true
		}
	}
	return Info{}, false
}

// IsSupported reports whether c is a member of the supported set.
func (c Code) IsSupported() bool {
	_, ok := Parse(string(c))
	return ok
}

func (c Code) String() string {
	return string(c)
}

// Source names the signal a language was resolved from.
type Source string

// Resolution sources, in priority order.
const (
	SourceURL     Source = "url"
	SourceStored  Source = "stored"
	SourceBrowser Source = "browser"
	SourceGeo     Source = "geo"
	SourceDefault Source = "default"
)

// Preference is the persisted outcome of a resolution.
type Preference struct {
	Code   Code   `json:"code"`
	Source Source `json:"source"`
}
