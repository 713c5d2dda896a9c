package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "Hello",
		},
		{
			name:     "strips nested tags",
			input:    `<div><p>nested <span>content</span></p></div>`,
			expected: "nested content",
		},
		{
			name:     "keeps plain text",
			input:    "  日本語のテキスト ",
			expected: "日本語のテキスト",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestContentHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps markdown output", func(t *testing.T) {
		t.Parallel()
		in := `<h2 id="intro">Intro</h2><p><strong>bold</strong> and <code class="language-go">x := 1</code></p>`
		assert.Equal(t, in, string(sanitizer.ContentHTML([]byte(in))))
	})

	t.Run("drops scripts and handlers", func(t *testing.T) {
		t.Parallel()
		out := string(sanitizer.ContentHTML([]byte(`<p onclick="x()">hi</p><script>alert(1)</script>`)))
		assert.Equal(t, "<p>hi</p>", out)
	})

	t.Run("neutralizes javascript links", func(t *testing.T) {
		t.Parallel()
		out := string(sanitizer.ContentHTML([]byte(`<a href="javascript:alert(1)">x</a>`)))
		assert.NotContains(t, out, "javascript:")
	})

	t.Run("external links get rel and target", func(t *testing.T) {
		t.Parallel()
		out := string(sanitizer.ContentHTML([]byte(`<a href="https://example.com">x</a>`)))
		assert.Contains(t, out, "nofollow")
		assert.Contains(t, out, "noopener")
		assert.Contains(t, out, `target="_blank"`)
	})

	t.Run("arbitrary classes are removed", func(t *testing.T) {
		t.Parallel()
		out := string(sanitizer.ContentHTML([]byte(`<code class="evil">x</code>`)))
		assert.Equal(t, "<code>x</code>", out)
	})
}
