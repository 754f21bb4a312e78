package mdblog

import (
	"errors"

	"github.com/alnah/go-mdblog/internal/assets"
)

// Names of the built-in theme.
const (
	DefaultStyle       = assets.DefaultStyleName
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// AssetLoader supplies a site's theme. NewAssetLoader reads one from disk;
// implement it to serve themes from elsewhere.
type AssetLoader interface {
	// LoadStyle returns the CSS written to styles/site.css.
	// Returns ErrStyleNotFound for unknown names.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the page templates every page renders with.
	// Returns ErrTemplateSetNotFound or ErrIncompleteTemplateSet.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the html/template sources of a theme.
// Index, Post and Tag each define a "content" template that Layout invokes.
type TemplateSet struct {
	Name   string // Identifier (name or path)
	Layout string
	Index  string
	Post   string
	Tag    string
}

// NewAssetLoader returns the theme loader for basePath.
// An empty basePath loads the built-in theme only. Otherwise a custom style
// replaces the built-in style of the same name, and a custom template set may
// hold only the pages it overrides:
//
//	{basePath}/styles/{name}.css
//	{basePath}/templates/{name}/{layout,index,post,tag}.html
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, publicAssetError(err, nil)
	}
	return &themeLoader{resolver: resolver}, nil
}

// ThemeNames lists the styles and template sets resolvable from basePath,
// built-in ones included. An empty basePath lists the built-in theme.
func ThemeNames(basePath string) (styles, templateSets []string, err error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, nil, publicAssetError(err, nil)
	}
	return resolver.Styles(), resolver.TemplateSets(), nil
}

// themeLoader exposes the internal resolver through public types and errors.
type themeLoader struct {
	resolver *assets.AssetResolver
}

func (l *themeLoader) LoadStyle(name string) (string, error) {
	css, err := l.resolver.LoadStyle(name)
	if err != nil {
		return "", publicAssetError(err, ErrStyleNotFound)
	}
	return css, nil
}

func (l *themeLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := l.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, publicAssetError(err, ErrTemplateSetNotFound)
	}
	pub := TemplateSet(*ts)
	return &pub, nil
}

// assetErrors maps internal sentinels to the public ones callers match on.
var assetErrors = []struct{ internal, public error }{
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrTemplateSetNotFound, ErrTemplateSetNotFound},
	{assets.ErrIncompleteTemplateSet, ErrIncompleteTemplateSet},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrPathTraversal, ErrInvalidAssetPath},
}

// publicAssetError re-targets err at its public sentinel, keeping the
// message. Invalid names report as notFound, since no such asset can exist.
// Errors without a public counterpart are returned unchanged.
func publicAssetError(err, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, assets.ErrInvalidAssetName) {
		return &assetError{public: notFound, err: err}
	}
	for _, m := range assetErrors {
		if errors.Is(err, m.internal) {
			return &assetError{public: m.public, err: err}
		}
	}
	return err
}

// assetError carries an internal message under a public sentinel.
// Unwrap hides the internal chain, whose sentinels callers cannot import.
type assetError struct {
	public error
	err    error
}

func (e *assetError) Error() string { return e.err.Error() }

func (e *assetError) Unwrap() error { return e.public }
