package assets

import "errors"

// Sentinel errors for theme loading.
var (
	// ErrStyleNotFound indicates no styles/{name}.css exists in any location.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateSetNotFound indicates no templates/{name}/ directory holds any page template.
	ErrTemplateSetNotFound = errors.New("template set not found")

	// ErrIncompleteTemplateSet indicates a template set lacks a page template
	// that no built-in set of the same name can supply.
	ErrIncompleteTemplateSet = errors.New("template set missing required template")

	// ErrInvalidAssetName indicates a style or template set name that is not
	// a plain identifier (see ValidateAssetName).
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates theme.assetPath is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error while reading a theme file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates a theme file resolving outside theme.assetPath,
	// e.g. through a symlink.
	ErrPathTraversal = errors.New("path traversal detected")
)
