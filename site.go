package mdblog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ AssetLoader   = (*themeLoader)(nil)
)

// Output layout, relative to the output directory.
const (
	postsDir      = "blog"
	tagsDir       = "tags"
	feedFile      = "rss.xml"
	siteStyleFile = "styles/site.css"
	chromaCSSFile = "styles/chroma.css"
	indexFile     = "index.html"
)

// ErrUnsafeClean is returned when cleaning the output directory would remove
// the content directory.
var ErrUnsafeClean = errors.New("refusing to clean output directory")

// Site renders a blog into a static file tree.
// Create with NewSite and call Build; a Site may be built repeatedly.
type Site struct {
	cfg       Config
	logger    *slog.Logger
	loader    AssetLoader
	converter HTMLConverter
	now       func() time.Time
	clean     bool

	base       *url.URL // nil without BaseURL
	basePath   string   // URL path prefix, always ends in "/"
	dateLayout string
	style      string
	chromaCSS  string
	templates  *pageTemplates
}

// BuildResult summarizes a build.
type BuildResult struct {
	Posts    int
	Tags     int
	Files    []string // Written files, relative to the output directory
	Warnings []error  // Non-fatal problems (skipped feed, links to unknown posts)
	Duration time.Duration
}

// NewSite prepares a build: it validates cfg, loads the theme and configures
// the Markdown pipeline. Content is not read until Build.
func NewSite(cfg Config, opts ...Option) (*Site, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Site{
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		basePath: "/",
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.BaseURL != "" {
		base, err := parseBaseURL(cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		s.base = base
		s.basePath = base.Path
	}

	layout, err := dateutil.Layout(cfg.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("date format: %w", err)
	}
	s.dateLayout = layout

	if s.loader == nil {
		s.loader, err = NewAssetLoader(cfg.AssetPath)
		if err != nil {
			return nil, err
		}
	}

	styleName := cmp.Or(cfg.Style, DefaultStyle)
	s.style, err = s.loader.LoadStyle(styleName)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", styleName, err)
	}

	setName := cmp.Or(cfg.TemplateSet, DefaultTemplateSet)
	ts, err := s.loader.LoadTemplateSet(setName)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", setName, err)
	}
	s.templates, err = parseTemplates(ts, s.templateFuncs())
	if err != nil {
		return nil, err
	}

	highlight := cmp.Or(cfg.HighlightStyle, pipeline.DefaultHighlightStyle)
	s.chromaCSS, err = pipeline.ChromaCSS(highlight)
	if err != nil {
		return nil, err
	}
	if s.converter == nil {
		s.converter = pipeline.NewGoldmarkConverter(
			pipeline.WithHighlightStyle(highlight),
			pipeline.WithLineNumbers(cfg.LineNumbers),
			pipeline.WithHardWraps(cfg.HardWraps),
			pipeline.WithUnsafeHTML(cfg.UnsafeHTML),
			pipeline.WithSanitize(cfg.SanitizeHTML),
		)
	}

	return s, nil
}

// Build loads the posts and writes the site: one page per post, the index,
// one page per tag, the RSS feed and the stylesheets.
// Content validation errors abort the build before anything is written.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (s *Site) Build(ctx context.Context) (result *BuildResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	coll, err := LoadCollection(ctx, s.cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	s.logger.Info("loaded posts", "dir", s.cfg.ContentDir, "count", coll.Len())

	if s.clean {
		if err := s.cleanOutput(); err != nil {
			return nil, err
		}
	}

	b := &builder{site: s, coll: coll, result: &BuildResult{}}
	if err := b.run(ctx); err != nil {
		return nil, err
	}

	b.result.Duration = time.Since(start)
	s.logger.Info("site built",
		"posts", b.result.Posts,
		"tags", b.result.Tags,
		"files", len(b.result.Files),
		"duration", b.result.Duration)
	return b.result, nil
}

// Posts loads and returns the posts without building, newest first.
func (s *Site) Posts(ctx context.Context) ([]*Post, error) {
	return GetAllBlogPosts(ctx, s.cfg.ContentDir)
}

// cleanOutput removes the output directory unless it holds the content.
func (s *Site) cleanOutput() error {
	out, err := filepath.Abs(s.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	content, err := filepath.Abs(s.cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentDir, err)
	}
	if out == filepath.Dir(out) || isWithin(content, out) {
		return fmt.Errorf("%w: %s contains %s", ErrUnsafeClean, out, content)
	}
	s.logger.Debug("cleaning output", "dir", out)
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

// isWithin reports whether p equals dir or lies below it.
func isWithin(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// sitePath maps a slash-separated path below the site root to a URL path.
func (s *Site) sitePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return s.basePath
	}
	trailing := strings.HasSuffix(p, "/")
	segments := strings.Split(strings.TrimSuffix(p, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	out := s.basePath + strings.Join(segments, "/")
	if trailing {
		out += "/"
	}
	return out
}

// absoluteURL prefixes sitePath with the base URL's scheme and host.
// Returns the site path unchanged without a base URL.
func (s *Site) absoluteURL(p string) string {
	if s.base == nil {
		return s.sitePath(p)
	}
	return s.base.Scheme + "://" + s.base.Host + s.sitePath(p)
}

func postPath(id string) string {
	return path.Join(postsDir, id) + "/"
}

func tagPath(slug string) string {
	return path.Join(tagsDir, slug) + "/"
}

// builder holds the state of one Build call.
type builder struct {
	site   *Site
	coll   *Collection
	result *BuildResult
}

func (b *builder) run(ctx context.Context) error {
	s := b.site
	posts := b.coll.Posts()

	views := make([]*postView, 0, len(posts))
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := b.renderPost(ctx, p)
		if err != nil {
			return err
		}
		views = append(views, v)
		b.result.Posts++
	}

	tags := b.coll.Tags()
	tagViews := make([]tagView, len(tags))
	for i, t := range tags {
		tagViews[i] = tagView{Name: t.Name, URL: s.sitePath(tagPath(t.Slug)), Count: t.Count}
	}

	if err := b.renderIndex(views, tagViews); err != nil {
		return err
	}

	byID := make(map[string]*postView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	for _, t := range tags {
		if err := ctx.Err(); err != nil {
			return err
		}
		var tagged []*postView
		for _, p := range b.coll.ByTag(t.Slug) {
			tagged = append(tagged, byID[p.ID])
		}
		if err := b.renderTag(t, tagged, tagViews); err != nil {
			return err
		}
		b.result.Tags++
	}

	if err := b.writeFeed(posts); err != nil {
		return err
	}

	if err := b.write(siteStyleFile, []byte(s.style)); err != nil {
		return err
	}
	return b.write(chromaCSSFile, []byte(s.chromaCSS))
}

// renderPost converts a post body, publishes the files it references and
// writes its page.
func (b *builder) renderPost(ctx context.Context, p *Post) (*postView, error) {
	s := b.site
	page := postPath(p.ID)

	content, err := s.converter.ToHTML(ctx, p.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrHTMLConversion, p.SourcePath, err)
	}

	content, refs, err := pipeline.RewriteRelativePaths(content, pipeline.RewriteOptions{
		SourceDir: filepath.Dir(p.SourcePath),
		PageURL:   s.sitePath(page),
		PostURL: func(id string) string {
			if _, err := b.coll.Get(id); err != nil {
				b.warn(fmt.Errorf("%s: link to %w", p.ID, err))
			}
			return s.sitePath(postPath(id))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrHTMLConversion, p.SourcePath, err)
	}

	for _, ref := range refs {
		if err := b.copy(ref.Source, path.Join(page, ref.Rel)); err != nil {
			return nil, err
		}
	}

	v := s.newPostView(p, content)
	if p.Image != nil && !p.Image.IsRemote() {
		name := filepath.Base(p.Image.Path)
		if err := b.copy(p.Image.Path, path.Join(page, name)); err != nil {
			return nil, err
		}
	}

	data := s.newPageData(p.Title, p.Description)
	data.Post = v
	if err := b.renderPage(s.templates.post, path.Join(page, indexFile), data); err != nil {
		return nil, fmt.Errorf("%s: %w", p.SourcePath, err)
	}
	s.logger.Debug("rendered post", "id", p.ID, "assets", len(refs))
	return v, nil
}

func (b *builder) renderIndex(posts []*postView, tags []tagView) error {
	data := b.site.newPageData("", b.site.cfg.Description)
	data.Posts = posts
	data.Tags = tags
	return b.renderPage(b.site.templates.index, indexFile, data)
}

func (b *builder) renderTag(t TagCount, posts []*postView, tags []tagView) error {
	data := b.site.newPageData("#"+t.Name, "")
	data.Tag = t.Name
	data.Posts = posts
	data.Tags = tags
	return b.renderPage(b.site.templates.tag, path.Join(tagPath(t.Slug), indexFile), data)
}

func (b *builder) writeFeed(posts []*Post) error {
	s := b.site
	if s.cfg.DisableFeed {
		return nil
	}
	if s.base == nil {
		b.warn(fmt.Errorf("%w: %s not written", ErrMissingBaseURL, feedFile))
		return nil
	}
	data, err := s.renderFeed(posts)
	if err != nil {
		return err
	}
	return b.write(feedFile, data)
}

func (b *builder) warn(err error) {
	b.site.logger.Warn(err.Error())
	b.result.Warnings = append(b.result.Warnings, err)
}

// write stores data at rel below the output directory.
func (b *builder) write(rel string, data []byte) error {
	dst := filepath.Join(b.site.cfg.OutputDir, filepath.FromSlash(rel))
	if err := fileutil.WriteFile(dst, data); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	b.result.Files = append(b.result.Files, rel)
	return nil
}

// copy publishes a local file at rel below the output directory.
func (b *builder) copy(src, rel string) error {
	dst := filepath.Join(b.site.cfg.OutputDir, filepath.FromSlash(rel))
	if err := fileutil.CopyFile(src, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	b.result.Files = append(b.result.Files, rel)
	return nil
}
