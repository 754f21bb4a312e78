package mdblog

import (
	"context"
	"log/slog"
	"time"
)

// HTMLConverter turns a post body into an HTML fragment.
// The default is the goldmark pipeline configured from Config.
type HTMLConverter interface {
	ToHTML(ctx context.Context, markdown string) (string, error)
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger for build progress. Defaults to discarding output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAssetLoader sets a custom loader for the theme style and templates.
// Takes precedence over Config.AssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(s *Site) {
		s.loader = loader
	}
}

// WithConverter replaces the Markdown converter. Highlighting options in
// Config are ignored when set.
func WithConverter(conv HTMLConverter) Option {
	return func(s *Site) {
		s.converter = conv
	}
}

// WithNow sets the clock used for the footer year and the feed build date.
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("mdblog: WithNow requires a non-nil clock")
	}
	return func(s *Site) {
		s.now = now
	}
}

// WithCleanOutput removes the output directory before building.
func WithCleanOutput(clean bool) Option {
	return func(s *Site) {
		s.clean = clean
	}
}
