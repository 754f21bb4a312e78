package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads themes from a directory laid out like the embedded
// assets: {basePath}/styles/{name}.css and {basePath}/templates/{name}/*.html.
// Files that resolve outside basePath through symlinks are refused.
type FilesystemLoader struct {
	themeDir
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// Returns ErrInvalidBasePath unless basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	// Containment checks compare real paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	f := &FilesystemLoader{basePath: absPath}
	f.themeDir = themeDir{fsys: os.DirFS(absPath), guard: f.contains}
	return f, nil
}

// contains returns ErrPathTraversal when rel, a slash path below basePath,
// resolves outside basePath. Paths that do not exist yet are checked as given.
func (f *FilesystemLoader) contains(rel string) error {
	target := filepath.Join(f.basePath, filepath.FromSlash(rel))
	if realPath, err := filepath.EvalSymlinks(target); err == nil {
		target = realPath
	}

	// Separator suffix so /base/pathevil does not match /base/path.
	if !strings.HasPrefix(target, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, rel, f.basePath)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
