package mdblog

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// postSource builds a post document with the given front matter lines.
func postSource(front, body string) string {
	return "---\n" + front + "\n---\n" + body
}

// validPost returns a complete post document.
func validPost(title, pubDate string, tags ...string) string {
	front := "title: " + title + "\ndescription: About " + title + "\npubDate: " + pubDate + "\ntags: ["
	for i, tag := range tags {
		if i > 0 {
			front += ", "
		}
		front += tag
	}
	front += "]"
	return postSource(front, "# "+title+"\n\nBody of "+title+".\n")
}

// writePNG creates a w x h PNG at dir/name.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return writeFile(t, dir, name, buf.String())
}

func postIDs(posts []*Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
