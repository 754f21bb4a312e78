package mdblog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-mdblog/internal/fileutil"
)

// PostExtensions are the source file extensions picked up from the content directory.
var PostExtensions = []string{".md", ".mdx"}

// Collection is a validated set of posts, newest first.
type Collection struct {
	posts []*Post
	byID  map[string]*Post
}

// GetAllBlogPosts loads every post in dir and returns them sorted by PubDate,
// newest first. Posts sharing a PubDate keep file name order.
//
// Any document failing the schema makes the whole call fail; the error joins
// one *ValidationError per problem so all of them can be reported at once.
func GetAllBlogPosts(ctx context.Context, dir string) ([]*Post, error) {
	c, err := LoadCollection(ctx, dir)
	if err != nil {
		return nil, err
	}
	return c.Posts(), nil
}

// LoadCollection discovers and validates the posts in dir.
// Only regular files directly inside dir are considered; names starting with
// an underscore are skipped.
func LoadCollection(ctx context.Context, dir string) (*Collection, error) {
	paths, err := discoverPosts(dir)
	if err != nil {
		return nil, err
	}

	posts := make([]*Post, 0, len(paths))
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(path) // #nosec G304 -- discovered in content dir
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", path, err))
			continue
		}
		post, err := parsePost(path, content)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		posts = append(posts, post)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return NewCollection(posts)
}

// NewCollection sorts posts newest first. Returns ErrDuplicateID when two
// posts share an ID (e.g. hello.md and hello.mdx).
func NewCollection(posts []*Post) (*Collection, error) {
	c := &Collection{
		posts: slices.Clone(posts),
		byID:  make(map[string]*Post, len(posts)),
	}
	for _, p := range c.posts {
		if prev, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateID, p.ID, prev.SourcePath, p.SourcePath)
		}
		c.byID[p.ID] = p
	}
	sortPosts(c.posts)
	return c, nil
}

// sortPosts orders by PubDate descending. The sort is stable.
func sortPosts(posts []*Post) {
	slices.SortStableFunc(posts, func(a, b *Post) int {
		return b.PubDate.Compare(a.PubDate)
	})
}

// Posts returns all posts, newest first. The slice is a copy.
func (c *Collection) Posts() []*Post {
	return slices.Clone(c.posts)
}

// Len returns the number of posts.
func (c *Collection) Len() int {
	return len(c.posts)
}

// Get returns the post with the given ID.
func (c *Collection) Get(id string) (*Post, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPostNotFound, id)
	}
	return p, nil
}

// TagCount is a tag and the number of posts carrying it.
type TagCount struct {
	Name  string // First spelling seen, in post order
	Slug  string
	Count int
}

// Tags returns the distinct tags, grouped by slug, sorted by name.
// A post listing a tag twice counts once.
func (c *Collection) Tags() []TagCount {
	index := map[string]int{}
	var tags []TagCount
	for _, p := range c.posts {
		seen := map[string]bool{}
		for _, t := range p.Tags {
			slug := TagSlug(t)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			if i, ok := index[slug]; ok {
				tags[i].Count++
				continue
			}
			index[slug] = len(tags)
			tags = append(tags, TagCount{Name: t, Slug: slug, Count: 1})
		}
	}
	slices.SortFunc(tags, func(a, b TagCount) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.Slug, b.Slug),
		)
	})
	return tags
}

// ByTag returns the posts carrying tag, newest first.
func (c *Collection) ByTag(tag string) []*Post {
	var out []*Post
	for _, p := range c.posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// discoverPosts lists candidate post files in dir in lexical order.
func discoverPosts(dir string) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentDir, err)
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentDir, err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "_") || !fileutil.HasExtension(name, PostExtensions...) {
			continue
		}
		path := filepath.Join(absDir, name)
		// Follows symlinks; directories named like posts are skipped.
		if !fileutil.FileExists(path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
