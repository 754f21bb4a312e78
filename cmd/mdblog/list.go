package main

import (
	"cmp"
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	mdblog "github.com/alnah/go-mdblog"
)

// runList prints the posts newest first: date, id and title.
func runList(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseListFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg, err := loadEnvironment(flags.envFile, nil)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmp.Or(flags.config, envCfg.ConfigPath), env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if flags.content != "" {
		cfg.Content.Dir = flags.content
	}

	posts, err := mdblog.GetAllBlogPosts(ctx, cfg.Content.Dir)
	if err != nil {
		return withHints(err, cfg)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range posts {
		if flags.tag != "" && !p.HasTag(flags.tag) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.PubDate.Format(time.DateOnly), p.ID, p.Title)
	}
	return tw.Flush()
}
