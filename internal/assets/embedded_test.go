package assets

// Notes:
// - EmbeddedLoader: we test lookups, name validation and listing against the
//   built-in theme, and that the theme carries the classes and blocks the
//   site builder depends on.
// These are acceptable gaps: embed.FS read failures cannot be provoked.

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader_Lookup - Style and template set lookups
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_Lookup(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		load    func(name string) error
		input   string
		wantErr error
	}{
		{"default style", styleLoad(loader), DefaultStyleName, nil},
		{"missing style", styleLoad(loader), "nonexistent-style-xyz", ErrStyleNotFound},
		{"empty style name", styleLoad(loader), "", ErrInvalidAssetName},
		{"backslash traversal", styleLoad(loader), "..\\secret", ErrInvalidAssetName},
		{"dotted style name", styleLoad(loader), "style.name", ErrInvalidAssetName},
		{"default set", setLoad(loader), DefaultTemplateSetName, nil},
		{"missing set", setLoad(loader), "nope", ErrTemplateSetNotFound},
		{"empty set name", setLoad(loader), "", ErrInvalidAssetName},
		{"set traversal", setLoad(loader), "../default", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.load(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("load(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func styleLoad(l *EmbeddedLoader) func(string) error {
	return func(name string) error {
		css, err := l.LoadStyle(name)
		if err == nil && css == "" {
			return errors.New("empty style")
		}
		return err
	}
}

func setLoad(l *EmbeddedLoader) func(string) error {
	return func(name string) error {
		ts, err := l.LoadTemplateSet(name)
		if err == nil && ts.Name != name {
			return errors.New("template set name mismatch")
		}
		return err
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader_Names - Listing
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_Names(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	if got := loader.Styles(); !slices.Equal(got, []string{DefaultStyleName}) {
		t.Errorf("Styles() = %q", got)
	}
	if got := loader.TemplateSets(); !slices.Equal(got, []string{DefaultTemplateSetName}) {
		t.Errorf("TemplateSets() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestDefaultTheme_Content - Built-in theme contract
// ---------------------------------------------------------------------------

func TestDefaultTheme_Content(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	css, err := loader.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	for _, class := range []string{".code-container", ".code-header", ".code-filename", ".code-copy"} {
		if !strings.Contains(css, class) {
			t.Errorf("default style missing %s rule", class)
		}
	}

	ts, err := loader.LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	if !strings.Contains(ts.Layout, `{{template "content" .}}`) {
		t.Error("layout does not invoke the content block")
	}
	for name, page := range map[string]string{"index": ts.Index, "post": ts.Post, "tag": ts.Tag} {
		if !strings.Contains(page, `{{define "content"}}`) {
			t.Errorf("%s template does not define the content block", name)
		}
	}
	if !strings.Contains(ts.Post, "{{.Content}}") {
		t.Error("post template does not render the post content")
	}
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
