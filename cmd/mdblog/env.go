package main

import (
	"io"
	"os"
	"time"

	mdblog "github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader mdblog.AssetLoader // nil resolves theme.assetPath
	Config      *config.Config     // Preloaded config; nil loads from --config, MDBLOG_CONFIG or mdblog.yaml
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
