// Package frontmatter separates a YAML front matter block from a Markdown
// document and decodes it into a raw field map for schema validation.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// Sentinel errors for front matter parsing.
var (
	// ErrNoFrontMatter indicates the document does not start with "---".
	ErrNoFrontMatter = errors.New("document has no front matter")

	// ErrMissingClosingDelimiter indicates the document started with a
	// front matter delimiter but never closed it.
	ErrMissingClosingDelimiter = errors.New("front matter closing delimiter is missing")

	// ErrInvalidYAML indicates the front matter block is not a YAML mapping.
	ErrInvalidYAML = errors.New("invalid front matter YAML")
)

const delimiter = "---"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content []byte) []byte {
	if !bytes.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAll(content, []byte("\n"))
}

// Split separates the front matter block from the body. Line endings are
// normalized first. The closing delimiter may be the last line of the file.
// Returns ErrNoFrontMatter when the document does not open with "---".
func Split(content []byte) (front, body []byte, err error) {
	content = NormalizeLineEndings(content)
	content = bytes.TrimPrefix(content, []byte("\uFEFF"))

	open := []byte(delimiter + "\n")
	if !bytes.HasPrefix(content, open) {
		return nil, content, ErrNoFrontMatter
	}
	rest := content[len(open):]

	// Empty block: "---\n---\n"
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}
	if bytes.Equal(rest, []byte(delimiter)) {
		return []byte{}, nil, nil
	}

	closing := []byte("\n" + delimiter + "\n")
	if idx := bytes.Index(rest, closing); idx >= 0 {
		return rest[:idx+1], rest[idx+len(closing):], nil
	}

	tail := []byte("\n" + delimiter)
	if bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-len(tail)+1], nil, nil
	}

	return nil, nil, ErrMissingClosingDelimiter
}

// Parse splits content and decodes the front matter into a field map.
func Parse(content []byte) (fields map[string]any, body []byte, err error) {
	front, body, err := Split(content)
	if err != nil {
		return nil, body, err
	}

	fields, err = yamlutil.DecodeMap(front)
	if err != nil {
		return nil, body, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return fields, body, nil
}
