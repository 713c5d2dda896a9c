package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/folio/pkg/lang"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

//go:embed data
var embedded embed.FS

var (
	ErrMissingSite        = errors.New("content: site.yaml missing for default language")
	ErrInvalidSite        = errors.New("content: invalid site.yaml")
	ErrInvalidFrontmatter = errors.New("content: invalid front matter")
	ErrRender             = errors.New("content: failed to render markdown")
)

// Project is one portfolio entry.
type Project struct {
	Slug    string   `yaml:"slug"`
	Name    string   `yaml:"name"`
	Summary string   `yaml:"summary"`
	URL     string   `yaml:"url"`
	Tags    []string `yaml:"tags"`
	Year    int      `yaml:"year"`
}

// Post is a rendered blog post.
type Post struct {
	Published time.Time
	Slug      string
	Title     string
	Summary   string
	HTML      string
	// Lang is the language the post is written in, which differs from the
	// requested one when it was served from the default language.
	Lang lang.Code
}

// Site is the content of one language.
type Site struct {
	Title     string
	Tagline   string
	AboutHTML string
	Projects  []Project
	// Posts are sorted newest first.
	Posts []Post
	Lang  lang.Code
}

type siteFile struct {
	Title    string    `yaml:"title"`
	Tagline  string    `yaml:"tagline"`
	About    string    `yaml:"about"`
	Projects []Project `yaml:"projects"`
}

type postMeta struct {
	Published time.Time `yaml:"published"`
	Title     string    `yaml:"title"`
	Summary   string    `yaml:"summary"`
	Draft     bool      `yaml:"draft"`
}

// Catalog indexes Sites by language.
type Catalog struct {
	sites    map[lang.Code]*Site
	fallback lang.Code
}

type config struct {
	fsys     fs.FS
	dir      string
	fallback lang.Code
}

// Option configures Load.
type Option func(*config)

// WithFS reads content from dir inside fsys instead of the embedded data.
func WithFS(fsys fs.FS, dir string) Option {
	return func(c *config) {
		c.fsys = fsys
		c.dir = dir
	}
}

// WithDefault sets the language missing content falls back to.
func WithDefault(code lang.Code) Option {
	return func(c *config) {
		if code.IsSupported() {
			c.fallback = code
		}
	}
}

// Load parses every language directory. The default language must have a
// site.yaml; other languages may omit theirs.
func Load(opts ...Option) (*Catalog, error) {
	cfg := &config{fsys: embedded, dir: "data", fallback: lang.Default}
	for _, opt := range opts {
		opt(cfg)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	c := &Catalog{sites: make(map[lang.Code]*Site, len(lang.Codes())), fallback: cfg.fallback}
	for _, code := range lang.Codes() {
		site, err := loadSite(cfg.fsys, path.Join(cfg.dir, code.String()), code, md)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		if site != nil {
			c.sites[code] = site
		}
	}
	if _, ok := c.sites[cfg.fallback]; !ok {
		return nil, ErrMissingSite
	}
	return c, nil
}

// MustLoad is Load for package-level initialization.
func MustLoad(opts ...Option) *Catalog {
	c, err := Load(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Site returns the content for code, or the default language's content.
func (c *Catalog) Site(code lang.Code) *Site {
	if s, ok := c.sites[code]; ok {
		return s
	}
	return c.sites[c.fallback]
}

// Post finds a post by slug in code, then in the default language.
func (c *Catalog) Post(code lang.Code, slug string) (Post, bool) {
	for _, s := range []*Site{c.sites[code], c.sites[c.fallback]} {
		if s == nil {
			continue
		}
		if p, ok := s.Post(slug); ok {
			return p, true
		}
	}
	return Post{}, false
}

// Post looks a slug up in this site only.
func (s *Site) Post(slug string) (Post, bool) {
	i := slices.IndexFunc(s.Posts, func(p Post) bool { return p.Slug == slug })
	if i < 0 {
		return Post{}, false
	}
	return s.Posts[i], true
}

func loadSite(fsys fs.FS, dir string, code lang.Code, md goldmark.Markdown) (*Site, error) {
	raw, err := fs.ReadFile(fsys, path.Join(dir, "site.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var f siteFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Join(ErrInvalidSite, err)
	}

	about, err := render(md, []byte(f.About))
	if err != nil {
		return nil, err
	}

	posts, err := loadPosts(fsys, path.Join(dir, "posts"), code, md)
	if err != nil {
		return nil, err
	}

	return &Site{
		Title:     f.Title,
		Tagline:   f.Tagline,
		AboutHTML: about,
		Projects:  f.Projects,
		Posts:     posts,
		Lang:      code,
	}, nil
}

func loadPosts(fsys fs.FS, dir string, code lang.Code, md goldmark.Markdown) ([]Post, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(files))
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}

		var meta postMeta
		body, err := parseFrontmatter(raw, &meta)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(file), err)
		}
		if meta.Draft {
			continue
		}

		html, err := render(md, body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(file), err)
		}

		posts = append(posts, Post{
			Slug:      strings.TrimSuffix(path.Base(file), ".md"),
			Title:     meta.Title,
			Summary:   sanitizer.StripHTML(meta.Summary),
			Published: meta.Published,
			HTML:      html,
			Lang:      code,
		})
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.Published.Compare(a.Published)
	})
	return posts, nil
}

func render(md goldmark.Markdown, src []byte) (string, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return string(sanitizer.ContentHTML(buf.Bytes())), nil
}

// yamlFormat reads "---" delimited front matter with yaml.v3, the decoder
// site.yaml uses.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// parseFrontmatter decodes leading front matter into meta and returns the
// body. Files without front matter are all body.
func parseFrontmatter(src []byte, meta any) ([]byte, error) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	body, err := frontmatter.Parse(bytes.NewReader(src), meta, yamlFormat)
	if err != nil {
		return nil, errors.Join(ErrInvalidFrontmatter, err)
	}
	return body, nil
}
