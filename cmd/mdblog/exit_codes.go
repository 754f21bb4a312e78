package main

import (
	"errors"
	"os"

	mdblog "github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/dateutil"
)

// Exit codes for the mdblog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or post front matter
	ExitIO      = 3 // Content not found, output not writable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2). Checked first: an invalid post
	// can also wrap the os error of a missing cover image.
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, mdblog.ErrInvalidPost) ||
		errors.Is(err, mdblog.ErrDuplicateID) ||
		errors.Is(err, mdblog.ErrStyleNotFound) ||
		errors.Is(err, mdblog.ErrTemplateSetNotFound) ||
		errors.Is(err, mdblog.ErrIncompleteTemplateSet) ||
		errors.Is(err, mdblog.ErrTemplateParse) ||
		errors.Is(err, mdblog.ErrInvalidAssetPath) ||
		errors.Is(err, mdblog.ErrUnsafeClean) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdblog.ErrContentDir) ||
		errors.Is(err, mdblog.ErrOutputWrite) {
		return ExitIO
	}

	return ExitGeneral
}
