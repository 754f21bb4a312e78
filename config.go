package mdblog

import (
	"fmt"
	"net/url"
	"strings"
)

// Default TOC depth range.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// Config describes a site build.
type Config struct {
	// Site metadata, exposed to templates as .Site.
	Title       string
	Description string
	Author      string
	BaseURL     string // Absolute http(s) URL; its path prefixes every site link
	Language    string

	ContentDir string // Flat directory of .md/.mdx posts
	OutputDir  string

	DateFormat string // dateutil preset or tokens, empty for the default

	HighlightStyle string // chroma style, empty for the default
	LineNumbers    bool
	HardWraps      bool
	UnsafeHTML     bool
	SanitizeHTML   bool // Filter rendered posts, see pipeline.NewSanitizePolicy

	Style       string // Theme style name, empty for DefaultStyle
	TemplateSet string // Theme template set name, empty for DefaultTemplateSet
	AssetPath   string // Custom asset directory, empty for embedded only

	DisableFeed bool
	FeedLimit   int  // Newest N posts in the feed, 0 for all
	TOC         *TOC // Per-post table of contents, nil to disable
}

// TOC configures the table of contents rendered above each post.
type TOC struct {
	MinDepth int // 1-6, 0 uses DefaultTOCMinDepth
	MaxDepth int // 1-6, 0 uses DefaultTOCMaxDepth
}

// Validate checks the config before a build.
//
// This is a TRUST BOUNDARY for direct library users who build Config manually.
// CLI users have their values validated earlier when the config file loads.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("%w: content directory is required", ErrContentDir)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is required", ErrOutputWrite)
	}
	if c.BaseURL != "" {
		if _, err := parseBaseURL(c.BaseURL); err != nil {
			return err
		}
	}
	if c.FeedLimit < 0 {
		return fmt.Errorf("feed limit must be >= 0, got %d", c.FeedLimit)
	}
	return c.TOC.Validate()
}

// Validate checks depth bounds. A nil TOC is valid.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	lo, hi := t.depths()
	if lo < 1 || lo > 6 {
		return fmt.Errorf("TOC min depth must be between 1 and 6, got %d", lo)
	}
	if hi < 1 || hi > 6 {
		return fmt.Errorf("TOC max depth must be between 1 and 6, got %d", hi)
	}
	if lo > hi {
		return fmt.Errorf("TOC min depth (%d) > max depth (%d)", lo, hi)
	}
	return nil
}

func (t *TOC) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// parseBaseURL accepts absolute http(s) URLs and normalizes the path to end in "/".
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be an absolute http(s) URL", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery, u.Fragment = "", ""
	return u, nil
}
