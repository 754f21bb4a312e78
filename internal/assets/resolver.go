package assets

import (
	"errors"
	"slices"
)

// AssetResolver layers a theme directory over the embedded themes.
//
// Styles resolve whole: a custom styles/{name}.css replaces the embedded one.
// Template sets resolve per file: a custom templates/{name}/ may hold only
// the pages it changes, and the rest come from the embedded set of the same
// name. A custom set with no embedded counterpart must be complete.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without theme.assetPath
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath resolves embedded themes only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadStyle loads a style from the theme directory, else from the embedded ones.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	css, err := r.custom.LoadStyle(name)
	if !errors.Is(err, ErrStyleNotFound) {
		return css, err
	}
	return r.embedded.LoadStyle(name)
}

// LoadTemplateSet merges the custom pages of a template set over the
// embedded pages of the same name.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplateSet(name)
	}

	files, missing, err := r.custom.readTemplateSet(name)
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return buildTemplateSet(name, files, nil)
	}

	base, baseMissing, err := r.embedded.readTemplateSet(name)
	if err != nil {
		return nil, err
	}
	if len(baseMissing) == len(templateFiles) {
		// No embedded counterpart: report on the custom set alone.
		return buildTemplateSet(name, files, missing)
	}
	return buildTemplateSet(name, files, fillTemplateFiles(files, base, missing))
}

// Styles returns the sorted names of all resolvable styles.
func (r *AssetResolver) Styles() []string {
	names := r.embedded.Styles()
	if r.custom != nil {
		names = append(names, r.custom.Styles()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// TemplateSets returns the sorted names of all resolvable template sets.
func (r *AssetResolver) TemplateSets() []string {
	names := r.embedded.TemplateSets()
	if r.custom != nil {
		names = append(names, r.custom.TemplateSets()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

var _ AssetLoader = (*AssetResolver)(nil)
