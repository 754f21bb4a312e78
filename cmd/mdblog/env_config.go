package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-mdblog/internal/config"
)

// defaultEnvFile is read from the working directory when present.
const defaultEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDBLOG_CONFIG: config file name or path
	ContentDir string // MDBLOG_CONTENT_DIR: posts directory
	OutputDir  string // MDBLOG_OUTPUT_DIR: output directory
	BaseURL    string // MDBLOG_BASE_URL: absolute site URL
	Style      string // MDBLOG_STYLE: theme style name
	FeedLimit  int    // MDBLOG_FEED_LIMIT: newest N posts in rss.xml, -1 when unset
}

// knownEnvVars lists valid MDBLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDBLOG_CONFIG":      true,
	"MDBLOG_CONTENT_DIR": true,
	"MDBLOG_OUTPUT_DIR":  true,
	"MDBLOG_BASE_URL":    true,
	"MDBLOG_STYLE":       true,
	"MDBLOG_FEED_LIMIT":  true,
}

// readEnvFile parses a dotenv file without touching the process environment.
// An empty path reads .env from the working directory if it exists; an
// explicit path must exist.
func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return vars, nil
}

// envLookup resolves a variable from the process environment first, then
// from the dotenv values.
func envLookup(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
}

// loadEnvConfig reads the MDBLOG_* values through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDBLOG_CONFIG"),
		ContentDir: getenv("MDBLOG_CONTENT_DIR"),
		OutputDir:  getenv("MDBLOG_OUTPUT_DIR"),
		BaseURL:    getenv("MDBLOG_BASE_URL"),
		Style:      getenv("MDBLOG_STYLE"),
		FeedLimit:  -1,
	}

	// Invalid limits are ignored, like unset ones
	if limit := getenv("MDBLOG_FEED_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n >= 0 {
			cfg.FeedLimit = n
		}
	}

	return cfg
}

// loadEnvironment reads the env file and the process environment, warning
// about unknown MDBLOG_* names on w unless w is nil.
func loadEnvironment(envFile string, w io.Writer) (*envConfig, error) {
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	if w != nil {
		warnUnknownEnvVars(w, dotenv)
	}
	return loadEnvConfig(envLookup(dotenv)), nil
}

// warnUnknownEnvVars logs warnings for unrecognized MDBLOG_* variables, in
// the process environment and in dotenv.
// Helps catch typos like MDBLOG_BASEURL instead of MDBLOG_BASE_URL.
func warnUnknownEnvVars(w io.Writer, dotenv map[string]string) {
	seen := make(map[string]bool)
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		seen[name] = true
	}
	for name := range dotenv {
		seen[name] = true
	}

	for _, name := range slices.Sorted(maps.Keys(seen)) {
		if strings.HasPrefix(name, "MDBLOG_") && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are merged afterwards,
// giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.BaseURL != "" {
		cfg.Site.BaseURL = env.BaseURL
	}
	if env.Style != "" {
		cfg.Theme.Style = env.Style
	}
	if env.FeedLimit >= 0 {
		cfg.Feed.Limit = env.FeedLimit
	}
}
