// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
)

// ForBaseURL returns hints for a feed that cannot be built without a base URL.
// Detects CI and suggests the environment variable there.
func ForBaseURL() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	hints = append(hints, "set site.baseURL in mdblog.yaml")
	if inCI && os.Getenv("MDBLOG_BASE_URL") == "" {
		hints = append(hints, "or export MDBLOG_BASE_URL in the CI job")
	}
	hints = append(hints, "or disable the feed with --no-feed")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdblog/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mdblog") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContentDir returns hints when the posts directory is missing.
func ForContentDir(dir string) string {
	if dir != "" && fileutil.FileExists(dir) {
		return format(dir + " is a file; point --content at a directory of .md/.mdx posts")
	}
	return format("create " + dir + " or point --content at a directory of .md/.mdx posts")
}

// ForInvalidPost reminds which front matter fields a post needs.
func ForInvalidPost() string {
	return format("front matter needs title, description and pubDate (e.g. pubDate: 2024-01-15)")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForDateFormat lists the date presets.
func ForDateFormat() string {
	presets := make([]string, 0, len(dateutil.DatePresets))
	for name := range dateutil.DatePresets {
		presets = append(presets, name)
	}
	slices.Sort(presets)
	return format("use a preset (" + strings.Join(presets, ", ") + ") or tokens like YYYY-MM-DD")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplatesNotFound returns hints for template set errors.
func ForTemplatesNotFound(available []string) string {
	hints := []string{
		"a new template set needs layout.html, index.html, post.html and tag.html",
		"a set named like a built-in one may override single pages",
	}
	if len(available) > 0 {
		hints = append(hints, "available: "+strings.Join(available, ", "))
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
