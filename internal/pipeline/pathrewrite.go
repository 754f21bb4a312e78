package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdblog/internal/fileutil"
	"golang.org/x/net/html"
)

// AssetRef is a local file referenced by a post and published next to it.
type AssetRef struct {
	Source string // absolute path on disk
	Rel    string // slash-separated path below the post's output directory
}

// RewriteOptions locates a post on disk and on the site.
type RewriteOptions struct {
	// SourceDir is the directory holding the post source file.
	SourceDir string
	// PageURL is the post's URL path, with trailing slash ("/blog/hello/").
	PageURL string
	// PostURL maps a sibling post ID to its URL. Links to .md/.mdx files are
	// left alone when nil.
	PostURL func(id string) string
}

// RewriteRelativePaths rewrites relative references in a rendered post so
// they resolve on the published site, and returns the local files that must
// be copied next to the page.
//
// Rewrites:
//   - img[src] and a[href] to files under SourceDir: PageURL + path
//   - a[href] to sibling .md/.mdx posts: PostURL(id), keeping query and fragment
//
// Left unchanged: URLs with a scheme, protocol-relative and absolute paths,
// anchors, paths escaping SourceDir, and files that do not exist.
func RewriteRelativePaths(content string, opts RewriteOptions) (string, []AssetRef, error) {
	if opts.SourceDir == "" {
		return content, nil, nil
	}

	absSourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return "", nil, err
	}

	tree, err := parseTree(content)
	if err != nil {
		return "", nil, err
	}

	rw := &pathRewriter{opts: opts, sourceDir: absSourceDir, seen: map[string]bool{}}
	rw.rewriteNode(tree.root)

	out, err := tree.render()
	if err != nil {
		return "", nil, err
	}
	return out, rw.refs, nil
}

type pathRewriter struct {
	opts      RewriteOptions
	sourceDir string
	refs      []AssetRef
	seen      map[string]bool
}

func (rw *pathRewriter) rewriteNode(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			rw.rewriteAttr(n, "src", false)
		case "a":
			rw.rewriteAttr(n, "href", true)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rw.rewriteNode(c)
	}
}

func (rw *pathRewriter) rewriteAttr(n *html.Node, attrName string, isLink bool) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		ref, suffix := splitRef(attr.Val)
		rel, err := url.PathUnescape(ref)
		if err != nil || rel == "" {
			continue
		}

		if isLink && rw.opts.PostURL != nil && isPostSource(rel) {
			if id, ok := siblingPostID(rel); ok {
				n.Attr[i].Val = rw.opts.PostURL(id) + suffix
			}
			continue
		}

		absPath := filepath.Join(rw.sourceDir, filepath.FromSlash(rel))
		if !isPathUnderDir(absPath, rw.sourceDir) || !fileutil.FileExists(absPath) {
			continue
		}

		cleanRel := path.Clean(filepath.ToSlash(rel))
		n.Attr[i].Val = rw.opts.PageURL + path.Clean(ref) + suffix
		if !rw.seen[cleanRel] {
			rw.seen[cleanRel] = true
			rw.refs = append(rw.refs, AssetRef{Source: absPath, Rel: cleanRel})
		}
	}
}

// splitRef separates a reference from its query and fragment.
func splitRef(val string) (ref, suffix string) {
	if i := strings.IndexAny(val, "?#"); i >= 0 {
		return val[:i], val[i:]
	}
	return val, ""
}

func isPostSource(rel string) bool {
	ext := strings.ToLower(path.Ext(rel))
	return ext == ".md" || ext == ".mdx"
}

// siblingPostID returns the post ID for a link to a file in the same
// directory. Posts are discovered flat, so anything deeper is not a post.
func siblingPostID(rel string) (string, bool) {
	clean := path.Clean(filepath.ToSlash(rel))
	if strings.Contains(clean, "/") {
		return "", false
	}
	id := strings.TrimSuffix(clean, path.Ext(clean))
	if id == "" || strings.HasPrefix(id, "_") {
		return "", false
	}
	return id, true
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "?") {
		return false
	}
	// Protocol-relative and site-absolute paths are already resolved.
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return false
	}
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath, cleanDir)
}
