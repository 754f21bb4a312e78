package mdblog

import (
	"slices"
	"time"
)

// Post is a validated blog post. Posts are not modified after loading.
type Post struct {
	ID          string     // Source file name without extension
	Title       string     // Required
	Description string     // Required
	PubDate     time.Time  // Required
	UpdatedDate *time.Time // Optional, nil when absent or null
	Tags        []string   // Required, may be empty; order and duplicates preserved
	Image       *Image     // Optional cover image

	SourcePath string // Absolute path of the source file
	Body       string // Markdown following the front matter
}

// Image is a cover image referenced from front matter.
type Image struct {
	Src    string // Value as written in front matter
	Path   string // Resolved file on disk, empty for remote images
	Width  int
	Height int
	Format string // Decoder name: png, jpeg, gif, webp
}

// IsRemote reports whether the image is an absolute URL rather than a local file.
func (i *Image) IsRemote() bool {
	return i != nil && i.Path == ""
}

// LastModified returns UpdatedDate when set, PubDate otherwise.
func (p *Post) LastModified() time.Time {
	if p.UpdatedDate != nil {
		return *p.UpdatedDate
	}
	return p.PubDate
}

// HasTag reports whether the post carries tag, compared by slug.
func (p *Post) HasTag(tag string) bool {
	want := TagSlug(tag)
	return slices.ContainsFunc(p.Tags, func(t string) bool {
		return TagSlug(t) == want
	})
}
