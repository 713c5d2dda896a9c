// Package content loads the portfolio's localized pages.
//
// Every language has its own directory:
//
//	data/{code}/site.yaml        title, tagline, about text, projects
//	data/{code}/posts/{slug}.md  blog posts with YAML front matter
//
// Slugs are shared between languages so a post keeps its URL when the
// visitor switches language. A page or post missing in one language is
// served from the default language. Markdown is rendered with goldmark and
// sanitized before it reaches a template.
package content
