package main

// Notes:
// - This file contains test helpers used across command tests.
// - These are not functions under test themselves, but supporting infrastructure.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-mdblog/internal/config"
)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// fixedNow is the clock used by command tests.
func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// newTestEnv returns an Environment writing to buffers.
// A nil cfg uses config.DefaultConfig so no mdblog.yaml is looked up.
func newTestEnv(cfg *config.Config) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    fixedNow,
		Stdout: &stdout,
		Stderr: &stderr,
		Config: cfg,
	}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// writeFile writes content to dir/name, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

const firstPost = `---
title: First Post
description: Getting started
pubDate: 2024-01-15
tags: [go, Testing]
---
# Hello

` + "```go file=\"main.go\"\npackage main\n```\n"

const secondPost = `---
title: Second Post
description: Follow up
pubDate: 2024-03-01
tags: [go]
---
More words.
`

// writeBlog creates dir/content with two posts and returns its path.
func writeBlog(t *testing.T, dir string) string {
	t.Helper()
	content := filepath.Join(dir, "content")
	writeFile(t, content, "first.md", firstPost)
	writeFile(t, content, "second.md", secondPost)
	return content
}

// assertExists fails the test when path is missing.
func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}
