// Package config loads and validates the mdblog.yaml site configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/pipeline"
	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultConfigName is looked up when no config is given explicitly.
const DefaultConfigName = "mdblog"

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxNameLength        = 100
	MaxURLLength         = 2048
	MaxPathLength        = 4096
	MaxLanguageLength    = 35 // BCP 47 upper bound in practice
	MaxStyleNameLength   = 100
)

// Config holds all configuration for a site build.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Highlight HighlightConfig `yaml:"highlight"`
	Dates     DatesConfig     `yaml:"dates"`
	Theme     ThemeConfig     `yaml:"theme"`
	Feed      FeedConfig      `yaml:"feed"`
	TOC       TOCConfig       `yaml:"toc"`
}

// SiteConfig describes the site itself.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	BaseURL     string `yaml:"baseURL"`  // Absolute URL, e.g. https://example.com/ (required for the feed)
	Language    string `yaml:"language"` // html lang attribute
}

// ContentConfig locates the posts.
type ContentConfig struct {
	Dir string `yaml:"dir"` // Flat directory of .md/.mdx posts
}

// OutputConfig locates the generated site.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Clean bool   `yaml:"clean"` // Remove Dir before building
}

// MarkdownConfig tunes the Markdown renderer.
type MarkdownConfig struct {
	HardWraps  bool `yaml:"hardWraps"`
	UnsafeHTML bool `yaml:"unsafeHTML"` // Pass raw HTML in posts through
	Sanitize   bool `yaml:"sanitize"`   // Filter rendered HTML through a UGC policy
}

// HighlightConfig tunes code highlighting.
type HighlightConfig struct {
	Style       string `yaml:"style"` // chroma style name
	LineNumbers bool   `yaml:"lineNumbers"`
}

// DatesConfig controls how dates are displayed.
type DatesConfig struct {
	Format string `yaml:"format"` // preset (iso, long, ...) or tokens (YYYY-MM-DD)
}

// ThemeConfig selects the style and templates.
type ThemeConfig struct {
	Style     string `yaml:"style"`     // styles/{name}.css
	Templates string `yaml:"templates"` // templates/{name}/
	AssetPath string `yaml:"assetPath"` // Custom asset directory (empty = embedded only)
}

// FeedConfig controls the RSS feed.
type FeedConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"` // Newest N posts, 0 = all
}

// TOCConfig controls the per-post table of contents.
type TOCConfig struct {
	Enabled  bool `yaml:"enabled"`
	MinDepth int  `yaml:"minDepth"` // 1-6
	MaxDepth int  `yaml:"maxDepth"` // 1-6, >= MinDepth
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Site:      SiteConfig{Title: "Blog", Language: "en"},
		Content:   ContentConfig{Dir: "content"},
		Output:    OutputConfig{Dir: "public"},
		Highlight: HighlightConfig{Style: pipeline.DefaultHighlightStyle},
		Dates:     DatesConfig{Format: dateutil.DefaultDateFormat},
		Theme: ThemeConfig{
			Style:     "default",
			Templates: "default",
		},
		Feed: FeedConfig{Enabled: true, Limit: 20},
		TOC:  TOCConfig{Enabled: false, MinDepth: 2, MaxDepth: 3},
	}
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"site.language", c.Site.Language, MaxLanguageLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxStyleNameLength},
		{"theme.style", c.Theme.Style, MaxStyleNameLength},
		{"theme.templates", c.Theme.Templates, MaxStyleNameLength},
		{"theme.assetPath", c.Theme.AssetPath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: site.baseURL %q must be an absolute http(s) URL", ErrInvalidValue, c.Site.BaseURL)
		}
	}

	if c.Content.Dir == "" {
		return fmt.Errorf("%w: content.dir is required", ErrInvalidValue)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir is required", ErrInvalidValue)
	}

	if c.Highlight.Style != "" && !pipeline.HasHighlightStyle(c.Highlight.Style) {
		return fmt.Errorf("%w: highlight.style %q is not a known chroma style", ErrInvalidValue, c.Highlight.Style)
	}

	if _, err := dateutil.Layout(c.Dates.Format); err != nil {
		return fmt.Errorf("dates.format: %w", err)
	}

	if c.Feed.Limit < 0 {
		return fmt.Errorf("%w: feed.limit must be >= 0, got %d", ErrInvalidValue, c.Feed.Limit)
	}

	if c.TOC.Enabled {
		if c.TOC.MinDepth < 1 || c.TOC.MinDepth > 6 {
			return fmt.Errorf("%w: toc.minDepth must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MinDepth)
		}
		if c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6 {
			return fmt.Errorf("%w: toc.maxDepth must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MaxDepth)
		}
		if c.TOC.MinDepth > c.TOC.MaxDepth {
			return fmt.Errorf("%w: toc.minDepth (%d) > toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdblog/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdblog", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
