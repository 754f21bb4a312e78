package mdblog

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	// Content errors.
	ErrInvalidPost  = errors.New("invalid blog post")
	ErrContentDir   = errors.New("content directory not readable")
	ErrDuplicateID  = errors.New("duplicate post id")
	ErrPostNotFound = errors.New("post not found")

	// Build errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrTemplateParse  = errors.New("template parsing failed")
	ErrTemplateRender = errors.New("template rendering failed")
	ErrOutputWrite    = errors.New("failed to write output")
	ErrMissingBaseURL = errors.New("site base URL is required for the feed")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// ValidationError reports a front matter field that does not satisfy the
// post schema. It matches ErrInvalidPost with errors.Is.
type ValidationError struct {
	Path   string // source file
	Field  string // front matter key, empty for document-level problems
	Reason string
	Err    error // underlying cause, if any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidPost and the underlying cause for errors.Is matching.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidPost}
	}
	return []error{ErrInvalidPost, e.Err}
}
