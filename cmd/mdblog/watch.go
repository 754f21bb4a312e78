package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdblog/internal/config"
)

// rebuildDelay coalesces bursts of events (editor saves, git checkouts).
const rebuildDelay = 300 * time.Millisecond

// runWatch builds once, then rebuilds whenever the content directory or the
// theme directory changes, until ctx is canceled. Failed builds are reported
// and watching goes on; only watcher setup errors are returned.
func runWatch(ctx context.Context, cfg *config.Config, build func(context.Context) error, logger *slog.Logger, env *Environment, quiet bool) error {
	roots := []string{cfg.Content.Dir}
	if cfg.Theme.AssetPath != "" {
		roots = append(roots, cfg.Theme.AssetPath)
	}
	watcher, err := newWatcher(roots, logger)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	report := func(err error) {
		if err != nil && ctx.Err() == nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
		}
	}
	report(build(ctx))

	if !quiet {
		fmt.Fprintf(env.Stdout, "Watching %s for changes (Ctrl+C to stop)\n", strings.Join(roots, ", "))
	}

	ignore := outputFilter(cfg.Output.Dir)
	return watchLoop(ctx, watcher, ignore, rebuildDelay, logger, func() {
		logger.Info("change detected, rebuilding")
		report(build(ctx))
	})
}

// newWatcher watches every directory under roots.
func newWatcher(roots []string, logger *slog.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting file watcher: %w", err)
	}
	for _, root := range roots {
		if err := addDirsRecursive(watcher, root, logger); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}
	return watcher, nil
}

// addDirsRecursive adds root and its subdirectories. fsnotify watches are
// not recursive.
func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && isIgnoredPath(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logger.Warn("watch add failed", "dir", path, "error", err)
		}
		return nil
	})
}

// watchLoop calls rebuild once events have been quiet for delay.
// Runs until ctx is canceled or the watcher closes.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, ignore func(string) bool, delay time.Duration, logger *slog.Logger, rebuild func()) error {
	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(delay)
		} else {
			timer.Reset(delay)
		}
		fire = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignore(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = addDirsRecursive(w, ev.Name, logger)
				}
			}
			logger.Debug("file change", "path", ev.Name, "op", ev.Op.String())
			schedule()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
			// Dropped events may hide a change.
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				schedule()
			}
		case <-fire:
			fire = nil
			rebuild()
		}
	}
}

// outputFilter ignores editor artifacts and anything under outputDir, which
// the build itself writes.
func outputFilter(outputDir string) func(string) bool {
	out, err := filepath.Abs(outputDir)
	if err != nil {
		out = filepath.Clean(outputDir)
	}
	return func(path string) bool {
		if isIgnoredPath(path) {
			return true
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		return abs == out || strings.HasPrefix(abs, out+string(filepath.Separator))
	}
}

// isIgnoredPath reports hidden files and editor swap or backup files.
func isIgnoredPath(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
