package assets

import "embed"

//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader loads the themes compiled into the binary.
type EmbeddedLoader struct {
	themeDir
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{themeDir{fsys: builtin}}
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
