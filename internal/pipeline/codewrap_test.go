package pipeline

// Notes:
// - Tests build trees by hand where node identity matters (relocated, not
//   cloned) and go through WrapCodeBlocksHTML where the serialized shape is
//   enough.

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func elem(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func classOf(n *html.Node) string {
	return attrValue(n, "class")
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// assertContainer checks the wrapper shape around pre and returns the container.
func assertContainer(t *testing.T, pre *html.Node, wantFilename string) *html.Node {
	t.Helper()

	container := pre.Parent
	if container == nil || container.Data != "div" || classOf(container) != CodeContainerClass {
		t.Fatalf("pre parent is not div.%s", CodeContainerClass)
	}
	kids := children(container)
	if len(kids) != 2 {
		t.Fatalf("container has %d children, want 2", len(kids))
	}
	if kids[1] != pre {
		t.Error("container's second child is not the original pre node")
	}

	header := kids[0]
	if header.Data != "div" || classOf(header) != CodeHeaderClass {
		t.Fatalf("first child = <%s class=%q>, want div.%s", header.Data, classOf(header), CodeHeaderClass)
	}
	parts := children(header)
	if len(parts) != 2 {
		t.Fatalf("header has %d children, want 2", len(parts))
	}
	if parts[0].Data != "div" || classOf(parts[0]) != CodeFilenameClass {
		t.Errorf("header[0] = <%s class=%q>, want div.%s", parts[0].Data, classOf(parts[0]), CodeFilenameClass)
	}
	if got := textOf(parts[0]); got != wantFilename {
		t.Errorf("filename label = %q, want %q", got, wantFilename)
	}
	if parts[1].Data != "button" || classOf(parts[1]) != CodeCopyClass {
		t.Errorf("header[1] = <%s class=%q>, want button.%s", parts[1].Data, classOf(parts[1]), CodeCopyClass)
	}
	if got := textOf(parts[1]); got != CodeCopyLabel {
		t.Errorf("button text = %q, want %q", got, CodeCopyLabel)
	}
	return container
}

// ---------------------------------------------------------------------------
// TestWrapCodeBlocks - Tree wrapping
// ---------------------------------------------------------------------------

func TestWrapCodeBlocks_SingleBlock(t *testing.T) {
	t.Parallel()

	root := elem("div")
	intro := elem("p")
	intro.AppendChild(textNode("intro"))
	pre := elem("pre", FilenameAttr, "main.rs")
	code := elem("code")
	code.AppendChild(textNode("fn main() {}"))
	pre.AppendChild(code)
	root.AppendChild(intro)
	root.AppendChild(pre)

	if got := WrapCodeBlocks(root); got != 1 {
		t.Errorf("WrapCodeBlocks() = %d, want 1", got)
	}

	container := assertContainer(t, pre, "main.rs")
	kids := children(root)
	if len(kids) != 2 || kids[0] != intro || kids[1] != container {
		t.Error("container did not take the pre's position among its siblings")
	}
	if pre.FirstChild != code {
		t.Error("pre children were modified")
	}
	if attrValue(pre, FilenameAttr) != "main.rs" {
		t.Error("pre attributes were modified")
	}
}

func TestWrapCodeBlocks_MissingFilename(t *testing.T) {
	t.Parallel()

	root := elem("div")
	pre := elem("pre")
	root.AppendChild(pre)

	WrapCodeBlocks(root)

	container := assertContainer(t, pre, "")
	label := container.FirstChild.FirstChild
	if label.FirstChild != nil {
		t.Error("empty filename label should have no children")
	}
}

func TestWrapCodeBlocks_SiblingsKeepOrder(t *testing.T) {
	t.Parallel()

	root := elem("div")
	first := elem("pre", FilenameAttr, "a.go")
	middle := elem("p")
	second := elem("pre", FilenameAttr, "b.go")
	third := elem("pre", FilenameAttr, "c.go")
	for _, n := range []*html.Node{first, middle, second, third} {
		root.AppendChild(n)
	}

	if got := WrapCodeBlocks(root); got != 3 {
		t.Fatalf("WrapCodeBlocks() = %d, want 3", got)
	}

	kids := children(root)
	if len(kids) != 4 {
		t.Fatalf("root has %d children, want 4", len(kids))
	}
	if kids[0] != assertContainer(t, first, "a.go") {
		t.Error("first block moved")
	}
	if kids[1] != middle {
		t.Error("paragraph moved")
	}
	if kids[2] != assertContainer(t, second, "b.go") {
		t.Error("second block moved")
	}
	if kids[3] != assertContainer(t, third, "c.go") {
		t.Error("third block moved")
	}
}

func TestWrapCodeBlocks_Nested(t *testing.T) {
	t.Parallel()

	root := elem("div")
	list := elem("ul")
	item := elem("li")
	pre := elem("pre", FilenameAttr, "Shell")
	item.AppendChild(pre)
	list.AppendChild(item)
	root.AppendChild(list)

	if got := WrapCodeBlocks(root); got != 1 {
		t.Fatalf("WrapCodeBlocks() = %d, want 1", got)
	}
	container := assertContainer(t, pre, "Shell")
	if container.Parent != item {
		t.Error("container not placed in the list item")
	}
}

func TestWrapCodeBlocks_PreInsidePreNotVisited(t *testing.T) {
	t.Parallel()

	root := elem("div")
	outer := elem("pre", FilenameAttr, "outer")
	inner := elem("pre", FilenameAttr, "inner")
	outer.AppendChild(inner)
	root.AppendChild(outer)

	if got := WrapCodeBlocks(root); got != 1 {
		t.Fatalf("WrapCodeBlocks() = %d, want 1", got)
	}
	assertContainer(t, outer, "outer")
	if inner.Parent != outer {
		t.Error("inner pre was wrapped")
	}
}

func TestWrapCodeBlocks_RootPreUnchanged(t *testing.T) {
	t.Parallel()

	pre := elem("pre", FilenameAttr, "main.go")
	pre.AppendChild(textNode("package main"))

	if got := WrapCodeBlocks(pre); got != 0 {
		t.Errorf("WrapCodeBlocks() = %d, want 0", got)
	}
	if pre.Parent != nil {
		t.Error("root pre gained a parent")
	}
	if pre.FirstChild == nil || pre.FirstChild.Data != "package main" {
		t.Error("root pre content changed")
	}
}

func TestWrapCodeBlocks_NoBlocks(t *testing.T) {
	t.Parallel()

	root := elem("div")
	root.AppendChild(elem("p"))

	if got := WrapCodeBlocks(root); got != 0 {
		t.Errorf("WrapCodeBlocks() = %d, want 0", got)
	}
	if got := WrapCodeBlocks(nil); got != 0 {
		t.Errorf("WrapCodeBlocks(nil) = %d, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// TestWrapCodeBlocksHTML - Serialized wrapping
// ---------------------------------------------------------------------------

func TestWrapCodeBlocksHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fragment with filename",
			input: `<pre data-filename="main.rs"><code>fn main() {}</code></pre>`,
			want: `<div class="code-container"><div class="code-header"><div class="code-filename">main.rs</div>` +
				`<button class="code-copy">Copy</button></div>` +
				`<pre data-filename="main.rs"><code>fn main() {}</code></pre></div>`,
		},
		{
			name:  "filename is escaped",
			input: `<pre data-filename="a&lt;b&gt;.go"></pre>`,
			want: `<div class="code-container"><div class="code-header"><div class="code-filename">a&lt;b&gt;.go</div>` +
				`<button class="code-copy">Copy</button></div>` +
				`<pre data-filename="a&lt;b&gt;.go"></pre></div>`,
		},
		{
			name:  "no code blocks",
			input: `<p>Hello <code>inline</code></p>`,
			want:  `<p>Hello <code>inline</code></p>`,
		},
		{
			name:  "empty input",
			input: ``,
			want:  ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := WrapCodeBlocksHTML(tt.input)
			if err != nil {
				t.Fatalf("WrapCodeBlocksHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("WrapCodeBlocksHTML() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestWrapCodeBlocksHTML_FullDocument(t *testing.T) {
	t.Parallel()

	input := `<!DOCTYPE html><html><head></head><body><pre data-filename="x"></pre></body></html>`
	got, err := WrapCodeBlocksHTML(input)
	if err != nil {
		t.Fatalf("WrapCodeBlocksHTML() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("doctype lost: %s", got)
	}
	if !strings.Contains(got, `<body><div class="code-container">`) {
		t.Errorf("body content not wrapped: %s", got)
	}
}
