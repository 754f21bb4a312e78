package mdblog

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/frontmatter"
)

// Front matter keys.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPubDate     = "pubDate"
	fieldUpdatedDate = "updatedDate"
	fieldTags        = "tags"
	fieldImage       = "image"
)

// parsePost validates one document against the post schema.
// Every failing field is reported; the returned error joins *ValidationError
// values. Keys outside the schema are ignored.
func parsePost(path string, content []byte) (*Post, error) {
	fields, body, err := frontmatter.Parse(content)
	if err != nil {
		return nil, &ValidationError{Path: path, Reason: err.Error(), Err: err}
	}

	v := &schemaValidator{path: path, fields: fields}
	post := &Post{
		ID:          postID(path),
		Title:       v.requiredString(fieldTitle),
		Description: v.requiredString(fieldDescription),
		PubDate:     v.requiredDate(fieldPubDate),
		UpdatedDate: v.optionalDate(fieldUpdatedDate),
		Tags:        v.stringList(fieldTags),
		Image:       v.image(fieldImage),
		SourcePath:  path,
		Body:        string(body),
	}
	if err := errors.Join(v.errs...); err != nil {
		return nil, err
	}
	return post, nil
}

// postID is the file name without its extension.
func postID(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

type schemaValidator struct {
	path   string
	fields map[string]any
	errs   []error
}

func (v *schemaValidator) fail(field, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{
		Path:   v.path,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	})
}

func (v *schemaValidator) requiredString(field string) string {
	raw, ok := v.fields[field]
	if !ok || raw == nil {
		v.fail(field, "required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(field, "expected string, got %T", raw)
		return ""
	}
	return s
}

func (v *schemaValidator) requiredDate(field string) time.Time {
	raw, ok := v.fields[field]
	if !ok || raw == nil {
		v.fail(field, "required")
		return time.Time{}
	}
	t, err := dateutil.Coerce(raw)
	if err != nil {
		v.fail(field, "%v", err)
		return time.Time{}
	}
	return t
}

// optionalDate accepts a missing key and an explicit null.
func (v *schemaValidator) optionalDate(field string) *time.Time {
	raw, ok := v.fields[field]
	if !ok || raw == nil {
		return nil
	}
	t, err := dateutil.Coerce(raw)
	if err != nil {
		v.fail(field, "%v", err)
		return nil
	}
	return &t
}

func (v *schemaValidator) stringList(field string) []string {
	raw, ok := v.fields[field]
	if !ok || raw == nil {
		v.fail(field, "required")
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		v.fail(field, "expected array of strings, got %T", raw)
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			v.fail(field, "element %d: expected string, got %T", i, item)
			continue
		}
		out = append(out, s)
	}
	return out
}

// image resolves a local path relative to the post and reads its dimensions.
// Absolute URLs are kept as remote images without measurement.
func (v *schemaValidator) image(field string) *Image {
	raw, ok := v.fields[field]
	if !ok || raw == nil {
		return nil
	}
	src, ok := raw.(string)
	if !ok {
		v.fail(field, "expected string, got %T", raw)
		return nil
	}
	if src == "" {
		v.fail(field, "empty path")
		return nil
	}
	if fileutil.IsURL(src) {
		return &Image{Src: src}
	}

	resolved := src
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(v.path), filepath.FromSlash(src))
	}
	img, err := measureImage(resolved)
	if err != nil {
		v.fail(field, "%v", err)
		return nil
	}
	img.Src = src
	return img
}
