package lang

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the Accept-Language header we are willing to parse.
const maxAcceptLanguageLength = 4096

// Match returns the first locale in the ordered list whose base language is
// supported. "ja-JP" matches ja; "fr-FR" and malformed tags are skipped.
func Match(locales []string) (Code, bool) {
	for _, raw := range locales {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "*" {
			continue
		}
		tag, err := language.Parse(raw)
		if err != nil {
			continue
		}
		// Only an explicitly written base counts; "und" would otherwise guess English.
		base, conf := tag.Base()
		if conf != language.Exact {
			continue
		}
		if code, ok := Parse(base.String()); ok {
			return code, true
		}
	}
	return "", false
}

// ParseAcceptLanguage turns an Accept-Language header into an ordered locale
// list, most preferred first. Entries with q=0 are dropped. When the header
// as a whole does not parse, each entry is parsed on its own and the
// malformed ones are skipped.
func ParseAcceptLanguage(header string) []string {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
		// Drop the entry the cut landed in.
		if i := strings.LastIndexByte(header, ','); i >= 0 {
			header = header[:i]
		}
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		tags = parseEntries(header)
	}
	if len(tags) == 0 {
		return nil
	}

	locales := make([]string, 0, len(tags))
	for _, tag := range tags {
		locales = append(locales, tag.String())
	}
	return locales
}

func parseEntries(header string) []language.Tag {
	type weighted struct {
		tag language.Tag
		q   float32
	}
	var entries []weighted
	for entry := range strings.SplitSeq(header, ",") {
		tags, qs, err := language.ParseAcceptLanguage(entry)
		if err != nil {
			continue
		}
		for i, tag := range tags {
			entries = append(entries, weighted{tag: tag, q: qs[i]})
		}
	}

	slices.SortStableFunc(entries, func(a, b weighted) int {
		return cmp.Compare(b.q, a.q)
	})
	tags := make([]language.Tag, 0, len(entries))
	for _, e := range entries {
		tags = append(tags, e.tag)
	}
	return tags
}
