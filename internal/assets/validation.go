package assets

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// MaxAssetNameLength bounds style and template set names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that a style or template set name is safe to use
// as a file or directory name. Allowed: ASCII letters and digits, plus '-' and
// '_' after the first character. Anything else (separators, dots, spaces)
// returns ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case (r == '-' || r == '_') && i > 0:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

// listAssetNames returns the sorted names of the assets in dir of fsys.
// With ext set, regular files ending in ext are listed without it;
// otherwise subdirectories are. Names that fail ValidateAssetName are
// skipped, as are unreadable directories.
func listAssetNames(fsys fs.FS, dir, ext string) []string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if ext != "" {
			if e.IsDir() || !strings.HasSuffix(name, ext) {
				continue
			}
			name = strings.TrimSuffix(name, ext)
		} else if !e.IsDir() {
			continue
		}
		if ValidateAssetName(name) == nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
