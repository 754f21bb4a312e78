package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// TemplateSet holds the html/template sources of a theme.
// Page templates define a "content" block rendered inside Layout.
type TemplateSet struct {
	Name   string // Identifier (name or directory path)
	Layout string // layout.html: document shell, invokes the "content" block
	Index  string // index.html: post listing
	Post   string // post.html: single post
	Tag    string // tag.html: posts for one tag
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// templateFiles lists the files a template set directory must contain.
var templateFiles = []string{"layout.html", "index.html", "post.html", "tag.html"}

// readTemplateFiles reads the files of one template set through read.
// Absent files are returned in missing rather than as an error.
func readTemplateFiles(read func(file string) ([]byte, error)) (files map[string]string, missing []string, err error) {
	files = make(map[string]string, len(templateFiles))
	for _, file := range templateFiles {
		content, err := read(file)
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, file)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: reading %s: %w", ErrAssetRead, file, err)
		}
		files[file] = string(content)
	}
	return files, missing, nil
}

// buildTemplateSet turns the result of readTemplateFiles into a TemplateSet.
// A set with no files at all does not exist; a set with some is incomplete.
func buildTemplateSet(name string, files map[string]string, missing []string) (*TemplateSet, error) {
	if len(missing) == len(templateFiles) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, strings.Join(missing, ", "))
	}
	return &TemplateSet{
		Name:   name,
		Layout: files["layout.html"],
		Index:  files["index.html"],
		Post:   files["post.html"],
		Tag:    files["tag.html"],
	}, nil
}

// fillTemplateFiles copies base entries for the missing files into files and
// returns the files still missing.
func fillTemplateFiles(files, base map[string]string, missing []string) []string {
	return slices.DeleteFunc(slices.Clone(missing), func(file string) bool {
		content, ok := base[file]
		if ok {
			files[file] = content
		}
		return ok
	})
}
