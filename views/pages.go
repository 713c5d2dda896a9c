package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

// recentPosts is how many posts the home page lists.
const recentPosts = 3

func component(fn func(out *writer)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &writer{w: w}
		fn(out)
		return out.err
	})
}

// Home renders the landing page.
func Home(p Page) templ.Component {
	return component(func(out *writer) {
		site := p.Site
		out.raw(`<section class="hero"><h1>`)
		out.text(site.Title)
		out.raw("</h1><p>")
		out.text(site.Tagline)
		out.raw("</p><p><a")
		out.attr("href", p.Link("/projects"))
		out.raw(">")
		out.text(p.T.Tn("projects_count", len(site.Projects)))
		out.raw("</a></p></section>")

		posts := site.Posts
		if len(posts) > recentPosts {
			posts = posts[:recentPosts]
		}
		out.raw(`<section class="recent"><h2>`)
		out.text(p.T.T("nav_blog"))
		out.raw("</h2>")
		postList(out, p, posts)
		out.raw("</section>")
	})
}

// About renders the about page.
func About(p Page) templ.Component {
	return component(func(out *writer) {
		out.raw("<article><h1>")
		out.text(p.T.T("nav_about"))
		out.raw("</h1>")
		out.raw(p.Site.AboutHTML)
		out.raw("</article>")
	})
}

// Projects renders the portfolio list.
func Projects(p Page) templ.Component {
	return component(func(out *writer) {
		out.raw("<h1>")
		out.text(p.T.T("nav_projects"))
		out.raw("</h1>")
		if len(p.Site.Projects) == 0 {
			out.raw(`<p class="empty">`)
			out.text(p.T.T("projects_empty"))
			out.raw("</p>")
			return
		}
		out.raw(`<ul class="projects">`)
		for _, pr := range p.Site.Projects {
			out.raw("<li")
			out.attr("id", pr.Slug)
			out.raw("><h2>")
			if pr.URL != "" {
				out.raw("<a")
				out.attr("href", string(templ.URL(pr.URL)))
				out.raw(` rel="noopener">`)
				out.text(pr.Name)
				out.raw("</a>")
			} else {
				out.text(pr.Name)
			}
			out.raw("</h2><p>")
			out.text(pr.Summary)
			out.raw("</p>")
			if pr.Year > 0 || len(pr.Tags) > 0 {
				out.raw(`<p class="meta">`)
				if pr.Year > 0 {
					out.raw("<time>")
					out.text(strconv.Itoa(pr.Year))
					out.raw("</time> ")
				}
				out.text(strings.Join(pr.Tags, ", "))
				out.raw("</p>")
			}
			out.raw("</li>")
		}
		out.raw("</ul>")
	})
}

// Blog renders the post index.
func Blog(p Page) templ.Component {
	return component(func(out *writer) {
		out.raw("<h1>")
		out.text(p.T.T("nav_blog"))
		out.raw(`</h1><p class="count">`)
		out.text(p.T.Tn("posts_count", len(p.Site.Posts)))
		out.raw("</p>")
		postList(out, p, p.Site.Posts)
	})
}

// Post renders one article. A post served from another language is marked
// with its own lang attribute.
func Post(p Page, post content.Post) templ.Component {
	return component(func(out *writer) {
		out.raw("<article")
		if post.Lang != p.Lang {
			out.attr("lang", post.Lang.String())
		}
		out.raw("><h1>")
		out.text(post.Title)
		out.raw("</h1>")
		published(out, p.T, post)
		out.raw(post.HTML)
		out.raw("</article><p><a")
		out.attr("href", p.Link("/blog"))
		out.raw(">")
		out.text(p.T.T("back_to_blog"))
		out.raw("</a></p>")
	})
}

// NotFound renders the localized 404 body.
func NotFound(p Page) templ.Component {
	return message(p, "not_found_title", "not_found_body")
}

// Error renders the localized body for unexpected failures.
func Error(p Page) templ.Component {
	return message(p, "error_title", "error_body")
}

func message(p Page, titleID, bodyID string) templ.Component {
	return component(func(out *writer) {
		out.raw(`<section class="message"><h1>`)
		out.text(p.T.T(titleID))
		out.raw("</h1><p>")
		out.text(p.T.T(bodyID))
		out.raw("</p><p><a")
		out.attr("href", p.Link("/"))
		out.raw(">")
		out.text(p.T.T("go_home"))
		out.raw("</a></p></section>")
	})
}

func postList(out *writer, p Page, posts []content.Post) {
	if len(posts) == 0 {
		out.raw(`<p class="empty">`)
		out.text(p.T.T("blog_empty"))
		out.raw("</p>")
		return
	}
	out.raw(`<ul class="posts">`)
	for _, post := range posts {
		href := p.Link("/blog/" + post.Slug)
		out.raw("<li><h3><a")
		out.attr("href", href)
		out.raw(">")
		out.text(post.Title)
		out.raw("</a></h3>")
		published(out, p.T, post)
		out.raw("<p>")
		out.text(post.Summary)
		out.raw("</p><a")
		out.attr("href", href)
		out.raw(` class="more">`)
		out.text(p.T.T("read_more"))
		out.raw("</a></li>")
	}
	out.raw("</ul>")
}

func published(out *writer, t *i18n.Translator, post content.Post) {
	if post.Published.IsZero() || t == nil {
		return
	}
	out.raw("<p><time")
	out.attr("datetime", post.Published.Format("2006-01-02"))
	out.raw(">")
	out.text(t.T("published_on", i18n.M{"Date": t.FormatDate(post.Published)}))
	out.raw("</time></p>")
}
