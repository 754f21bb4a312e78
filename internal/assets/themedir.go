package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// themeDir reads styles/{name}.css and templates/{name}/*.html from one file
// tree. Both loaders are a themeDir over a different tree.
type themeDir struct {
	fsys fs.FS
	// guard vets a slash path before it is opened; nil trusts the tree.
	guard func(rel string) error
}

func (d themeDir) readFile(rel string) ([]byte, error) {
	if d.guard != nil {
		if err := d.guard(rel); err != nil {
			return nil, err
		}
	}
	return fs.ReadFile(d.fsys, rel)
}

// LoadStyle returns the CSS of styles/{name}.css.
func (d themeDir) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := d.readFile(path.Join("styles", name+".css"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	case errors.Is(err, ErrPathTraversal):
		return "", err
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
	return string(content), nil
}

// LoadTemplateSet returns templates/{name}/ as a TemplateSet. All four page
// templates must be present.
func (d themeDir) LoadTemplateSet(name string) (*TemplateSet, error) {
	files, missing, err := d.readTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return buildTemplateSet(name, files, missing)
}

// readTemplateSet reads whatever pages templates/{name}/ holds.
func (d themeDir) readTemplateSet(name string) (map[string]string, []string, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, nil, err
	}
	return readTemplateFiles(func(file string) ([]byte, error) {
		return d.readFile(path.Join("templates", name, file))
	})
}

// Styles returns the sorted style names in the tree.
func (d themeDir) Styles() []string {
	return listAssetNames(d.fsys, "styles", ".css")
}

// TemplateSets returns the sorted template set names in the tree.
func (d themeDir) TemplateSets() []string {
	return listAssetNames(d.fsys, "templates", "")
}
