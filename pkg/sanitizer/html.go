// Package sanitizer cleans HTML produced from content files before it is
// written into pages.
package sanitizer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	contentPolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Rendered Markdown: the user-generated-content baseline plus
		// syntax-highlighting classes on code blocks.
		contentPolicy = bluemonday.UGCPolicy()
		contentPolicy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+-]+$`)).OnElements("code")
		contentPolicy.RequireNoFollowOnFullyQualifiedLinks(true)
		contentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// StripHTML removes every tag, leaving text suitable for meta descriptions.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// ContentHTML keeps the formatting Markdown can produce and drops scripts,
// event handlers, and unsafe URLs.
func ContentHTML(b []byte) []byte {
	initPolicies()
	return contentPolicy.SanitizeBytes(b)
}
