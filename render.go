package mdblog

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdblog/internal/pipeline"
)

// pageTemplates are the layout combined with each page template.
type pageTemplates struct {
	index *template.Template
	post  *template.Template
	tag   *template.Template
}

// parseTemplates parses the layout once and clones it per page, so every
// page template can define its own "content" block.
func parseTemplates(ts *TemplateSet, funcs template.FuncMap) (*pageTemplates, error) {
	base, err := template.New("layout").Funcs(funcs).Parse(ts.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/layout.html: %v", ErrTemplateParse, ts.Name, err)
	}

	page := func(name, src string) (*template.Template, error) {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
		}
		if _, err := t.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrTemplateParse, ts.Name, name, err)
		}
		if t.Lookup("content") == nil {
			return nil, fmt.Errorf("%w: %s/%s does not define \"content\"", ErrTemplateParse, ts.Name, name)
		}
		return t, nil
	}

	var pt pageTemplates
	if pt.index, err = page("index.html", ts.Index); err != nil {
		return nil, err
	}
	if pt.post, err = page("post.html", ts.Post); err != nil {
		return nil, err
	}
	if pt.tag, err = page("tag.html", ts.Tag); err != nil {
		return nil, err
	}
	return &pt, nil
}

func (s *Site) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"url":  s.sitePath,
		"date": func(t time.Time) string { return t.Format(s.dateLayout) },
		"iso":  func(t time.Time) string { return t.Format(time.DateOnly) },
		"year": func(t time.Time) int { return t.Year() },
	}
}

// pageData is the root value of every template.
type pageData struct {
	Site        siteView
	Title       string // Page title, empty on the index
	Description string
	Now         time.Time

	Posts []*postView // index and tag pages
	Post  *postView   // post page
	Tag   string      // tag page
	Tags  []tagView
}

type siteView struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
	Language    string
}

type postView struct {
	ID          string
	Title       string
	Description string
	URL         string
	PubDate     time.Time
	UpdatedDate *time.Time
	Tags        []string
	TagLinks    []tagLink // one per distinct tag slug
	Image       *imageView
	Content     template.HTML
	TOC         []pipeline.Heading
}

type tagLink struct {
	Name string
	URL  string
}

type tagView struct {
	Name  string
	URL   string
	Count int
}

type imageView struct {
	URL    string
	Width  int
	Height int
}

func (s *Site) newPageData(title, description string) *pageData {
	return &pageData{
		Site: siteView{
			Title:       s.cfg.Title,
			Description: s.cfg.Description,
			Author:      s.cfg.Author,
			BaseURL:     s.cfg.BaseURL,
			Language:    s.cfg.Language,
		},
		Title:       title,
		Description: description,
		Now:         s.now(),
	}
}

func (s *Site) newPostView(p *Post, content string) *postView {
	page := postPath(p.ID)
	v := &postView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		URL:         s.sitePath(page),
		PubDate:     p.PubDate,
		UpdatedDate: p.UpdatedDate,
		Tags:        p.Tags,
		Content:     template.HTML(content), // #nosec G203 -- rendered by goldmark, raw HTML only with UnsafeHTML
	}

	seen := map[string]bool{}
	for _, t := range p.Tags {
		slug := TagSlug(t)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		v.TagLinks = append(v.TagLinks, tagLink{Name: t, URL: s.sitePath(tagPath(slug))})
	}

	if img := p.Image; img != nil {
		iv := &imageView{URL: img.Src, Width: img.Width, Height: img.Height}
		if !img.IsRemote() {
			iv.URL = s.sitePath(path.Join(page, filepath.Base(img.Path)))
		}
		v.Image = iv
	}

	if toc := s.cfg.TOC; toc != nil {
		lo, hi := toc.depths()
		v.TOC = pipeline.ExtractHeadings(content, lo, hi)
	}
	return v
}

// renderPage executes the layout of t and writes the result to rel.
func (b *builder) renderPage(t *template.Template, rel string, data *pageData) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplateRender, rel, err)
	}
	return b.write(rel, buf.Bytes())
}
