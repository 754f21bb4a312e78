package mdblog

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-mdblog/internal/assets"
)

func TestNewAssetLoader_EmptyPath(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader(\"\") error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil {
		t.Errorf("LoadStyle(%q) error = %v", DefaultStyle, err)
	}
	if !strings.Contains(css, ".code-container") {
		t.Error("default style has no code-container rules")
	}

	ts, err := loader.LoadTemplateSet(DefaultTemplateSet)
	if err != nil {
		t.Fatalf("LoadTemplateSet(%q) error = %v", DefaultTemplateSet, err)
	}
	for name, src := range map[string]string{
		"Layout": ts.Layout, "Index": ts.Index, "Post": ts.Post, "Tag": ts.Tag,
	} {
		if src == "" {
			t.Errorf("TemplateSet.%s is empty", name)
		}
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader("/nonexistent/path/to/assets")
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewAssetLoader_CustomOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "styles/dark.css", "body { background: #000; }")
	for _, name := range []string{"layout", "index", "post", "tag"} {
		writeFile(t, dir, "templates/plain/"+name+".html", "<!-- "+name+" -->")
	}
	writeFile(t, dir, "templates/partial/layout.html", "x")

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	t.Run("custom style", func(t *testing.T) {
		t.Parallel()
		css, err := loader.LoadStyle("dark")
		if err != nil || !strings.Contains(css, "#000") {
			t.Errorf("LoadStyle(dark) = %q, %v", css, err)
		}
	})

	t.Run("embedded fallback", func(t *testing.T) {
		t.Parallel()
		if _, err := loader.LoadStyle(DefaultStyle); err != nil {
			t.Errorf("LoadStyle(default) error = %v", err)
		}
	})

	t.Run("custom template set", func(t *testing.T) {
		t.Parallel()
		ts, err := loader.LoadTemplateSet("plain")
		if err != nil {
			t.Fatalf("LoadTemplateSet(plain) error = %v", err)
		}
		if ts.Post != "<!-- post -->" {
			t.Errorf("Post = %q", ts.Post)
		}
	})

	t.Run("incomplete template set", func(t *testing.T) {
		t.Parallel()
		_, err := loader.LoadTemplateSet("partial")
		if !errors.Is(err, ErrIncompleteTemplateSet) {
			t.Errorf("error = %v, want ErrIncompleteTemplateSet", err)
		}
	})
}

func TestNewAssetLoader_PartialDefaultOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "templates/default/post.html", `{{define "content"}}<article>{{.Post.Title}}</article>{{end}}`)

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}
	ts, err := loader.LoadTemplateSet(DefaultTemplateSet)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	if !strings.Contains(ts.Post, "<article>") {
		t.Errorf("Post = %q, want the custom page", ts.Post)
	}
	if !strings.Contains(ts.Layout, `{{template "content" .}}`) {
		t.Errorf("Layout should come from the built-in theme, got %q", ts.Layout)
	}
}

func TestThemeNames(t *testing.T) {
	t.Parallel()

	t.Run("embedded", func(t *testing.T) {
		t.Parallel()
		styles, sets, err := ThemeNames("")
		if err != nil {
			t.Fatalf("ThemeNames() error = %v", err)
		}
		if strings.Join(styles, ",") != DefaultStyle || strings.Join(sets, ",") != DefaultTemplateSet {
			t.Errorf("ThemeNames() = %q, %q", styles, sets)
		}
	})

	t.Run("custom directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "styles/dark.css", "")
		writeFile(t, dir, "templates/zine/layout.html", "")

		styles, sets, err := ThemeNames(dir)
		if err != nil {
			t.Fatalf("ThemeNames() error = %v", err)
		}
		if got := strings.Join(styles, ","); got != "dark,default" {
			t.Errorf("styles = %q", got)
		}
		if got := strings.Join(sets, ","); got != "default,zine" {
			t.Errorf("template sets = %q", got)
		}
	})

	t.Run("invalid directory", func(t *testing.T) {
		t.Parallel()
		if _, _, err := ThemeNames("/nonexistent/path/to/assets"); !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("ThemeNames() error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestAssetLoader_NotFound(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := loader.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplateSet("nonexistent"); !errors.Is(err, ErrTemplateSetNotFound) {
		t.Errorf("LoadTemplateSet error = %v, want ErrTemplateSetNotFound", err)
	}
	if _, err := loader.LoadStyle("../escape"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(../escape) error = %v, want ErrStyleNotFound", err)
	}
}

func TestPublicAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		internal error
		notFound error
		want     error
	}{
		{"style", assets.ErrStyleNotFound, ErrStyleNotFound, ErrStyleNotFound},
		{"template set", assets.ErrTemplateSetNotFound, ErrTemplateSetNotFound, ErrTemplateSetNotFound},
		{"incomplete", assets.ErrIncompleteTemplateSet, ErrTemplateSetNotFound, ErrIncompleteTemplateSet},
		{"base path", assets.ErrInvalidBasePath, nil, ErrInvalidAssetPath},
		{"traversal", assets.ErrPathTraversal, ErrStyleNotFound, ErrInvalidAssetPath},
		{"invalid style name", assets.ErrInvalidAssetName, ErrStyleNotFound, ErrStyleNotFound},
		{"invalid set name", assets.ErrInvalidAssetName, ErrTemplateSetNotFound, ErrTemplateSetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			original := fmt.Errorf("%w: detail", tt.internal)
			got := publicAssetError(original, tt.notFound)
			if !errors.Is(got, tt.want) {
				t.Errorf("publicAssetError() = %v, want %v", got, tt.want)
			}
			if got.Error() != original.Error() {
				t.Errorf("message = %q, want %q", got.Error(), original.Error())
			}
		})
	}

	if publicAssetError(nil, ErrStyleNotFound) != nil {
		t.Error("publicAssetError(nil) should be nil")
	}
	other := errors.New("other")
	if got := publicAssetError(other, ErrStyleNotFound); got != other {
		t.Errorf("unknown errors should pass through, got %v", got)
	}
}
