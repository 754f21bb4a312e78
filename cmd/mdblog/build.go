package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	mdblog "github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/hints"
)

// runBuild builds the site into the output directory.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	var warnTo io.Writer
	if !flags.common.quiet {
		warnTo = env.Stderr
	}
	envCfg, err := loadEnvironment(flags.envFile, warnTo)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmp.Or(flags.common.config, envCfg.ConfigPath), env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeBuildFlags(flags, cfg)

	// Env vars and flags bypass the checks LoadConfig ran
	if err := cfg.Validate(); err != nil {
		return withHints(err, cfg)
	}

	logger := newLogger(env, flags.common.quiet, flags.common.verbose)
	build := func(ctx context.Context) error {
		site, err := mdblog.NewSite(toSiteConfig(cfg),
			mdblog.WithLogger(logger),
			mdblog.WithAssetLoader(env.AssetLoader),
			mdblog.WithNow(env.Now),
			mdblog.WithCleanOutput(cfg.Output.Clean),
		)
		if err != nil {
			return withHints(err, cfg)
		}

		result, err := site.Build(ctx)
		if err != nil {
			return withHints(err, cfg)
		}

		printBuildResult(result, cfg.Output.Dir, flags.common, env)
		return nil
	}

	if !flags.watch {
		return build(ctx)
	}
	return runWatch(ctx, cfg, build, logger, env, flags.common.quiet)
}

// mergeBuildFlags merges CLI flags into config. CLI values override config values.
func mergeBuildFlags(flags *buildFlags, cfg *config.Config) {
	if flags.site.content != "" {
		cfg.Content.Dir = flags.site.content
	}
	if flags.site.output != "" {
		cfg.Output.Dir = flags.site.output
	}
	if flags.site.baseURL != "" {
		cfg.Site.BaseURL = flags.site.baseURL
	}
	if flags.clean {
		cfg.Output.Clean = true
	}
	if flags.noFeed {
		cfg.Feed.Enabled = false
	}
}

// resolveConfig returns the config for a command.
// A preloaded env.Config wins. An explicit name or path must exist;
// without one, mdblog.yaml is optional and defaults apply.
func resolveConfig(nameOrPath string, env *Environment) (*config.Config, error) {
	if env.Config != nil {
		cfg := *env.Config
		return &cfg, nil
	}

	if nameOrPath != "" {
		cfg, err := config.LoadConfig(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", withConfigHints(err, nameOrPath))
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", withConfigHints(err, config.DefaultConfigName))
	}
	return cfg, nil
}

// withConfigHints appends hints to config loading errors.
func withConfigHints(err error, name string) error {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if dir, dirErr := os.UserConfigDir(); dirErr == nil {
			searched = append(searched, filepath.Join(dir, "go-mdblog", name+".yaml"))
		}
		return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(searched))
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return fmt.Errorf("%w%s", err, hints.ForDateFormat())
	}
	return err
}

// withHints appends actionable hints to build errors.
func withHints(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, mdblog.ErrInvalidPost):
		hint = hints.ForInvalidPost()
	case errors.Is(err, mdblog.ErrContentDir):
		hint = hints.ForContentDir(cfg.Content.Dir)
	case errors.Is(err, mdblog.ErrOutputWrite):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		hint = hints.ForDateFormat()
	case errors.Is(err, mdblog.ErrStyleNotFound):
		styles, _ := themeNames(cfg)
		hint = hints.ForStyleNotFound(styles)
	case errors.Is(err, mdblog.ErrTemplateSetNotFound), errors.Is(err, mdblog.ErrIncompleteTemplateSet):
		_, sets := themeNames(cfg)
		hint = hints.ForTemplatesNotFound(sets)
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// themeNames lists the styles and template sets the configured theme
// directory can resolve, falling back to the built-in names.
func themeNames(cfg *config.Config) (styles, templateSets []string) {
	styles, templateSets, err := mdblog.ThemeNames(cfg.Theme.AssetPath)
	if err != nil || len(styles) == 0 || len(templateSets) == 0 {
		return []string{mdblog.DefaultStyle}, []string{mdblog.DefaultTemplateSet}
	}
	return styles, templateSets
}

// toSiteConfig maps the file config onto the library config.
func toSiteConfig(cfg *config.Config) mdblog.Config {
	c := mdblog.Config{
		Title:          cfg.Site.Title,
		Description:    cfg.Site.Description,
		Author:         cfg.Site.Author,
		BaseURL:        cfg.Site.BaseURL,
		Language:       cfg.Site.Language,
		ContentDir:     cfg.Content.Dir,
		OutputDir:      cfg.Output.Dir,
		DateFormat:     cfg.Dates.Format,
		HighlightStyle: cfg.Highlight.Style,
		LineNumbers:    cfg.Highlight.LineNumbers,
		HardWraps:      cfg.Markdown.HardWraps,
		UnsafeHTML:     cfg.Markdown.UnsafeHTML,
		SanitizeHTML:   cfg.Markdown.Sanitize,
		Style:          cfg.Theme.Style,
		TemplateSet:    cfg.Theme.Templates,
		AssetPath:      cfg.Theme.AssetPath,
		DisableFeed:    !cfg.Feed.Enabled,
		FeedLimit:      cfg.Feed.Limit,
	}
	if cfg.TOC.Enabled {
		c.TOC = &mdblog.TOC{MinDepth: cfg.TOC.MinDepth, MaxDepth: cfg.TOC.MaxDepth}
	}
	return c
}

// printBuildResult reports the build on stdout and warnings on stderr.
func printBuildResult(result *mdblog.BuildResult, outputDir string, flags commonFlags, env *Environment) {
	if flags.quiet {
		return
	}

	// In verbose mode the logger already printed the warnings
	for _, w := range result.Warnings {
		hint := ""
		if errors.Is(w, mdblog.ErrMissingBaseURL) {
			hint = hints.ForBaseURL()
		}
		switch {
		case !flags.verbose:
			fmt.Fprintf(env.Stderr, "warning: %v%s\n", w, hint)
		case hint != "":
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hint, "\n"))
		}
	}

	if flags.verbose {
		for _, f := range result.Files {
			fmt.Fprintf(env.Stdout, "  %s\n", filepath.Join(outputDir, f))
		}
	}

	fmt.Fprintf(env.Stdout, "Built %d posts, %d tags into %s (%v)\n",
		result.Posts, result.Tags, outputDir, result.Duration.Round(time.Millisecond))
}
