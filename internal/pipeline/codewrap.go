package pipeline

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names of the code block wrapper. The site stylesheet and the
// client-side copy script address these.
const (
	CodeContainerClass = "code-container"
	CodeHeaderClass    = "code-header"
	CodeFilenameClass  = "code-filename"
	CodeCopyClass      = "code-copy"
	CodeCopyLabel      = "Copy"
)

// WrapCodeBlocks wraps every <pre> element under root in a code container:
//
//	<div class="code-container">
//	  <div class="code-header">
//	    <div class="code-filename">{data-filename}</div>
//	    <button class="code-copy">Copy</button>
//	  </div>
//	  <pre ...>...</pre>
//	</div>
//
// Matches are collected before any node is moved, and a matched <pre> is not
// descended into. The <pre> itself is relocated, not cloned. A matched node
// without a parent cannot be replaced and is left alone.
// Returns the number of wrapped blocks.
func WrapCodeBlocks(root *html.Node) int {
	if root == nil {
		return 0
	}

	var blocks []*html.Node
	collectCodeBlocks(root, &blocks)

	wrapped := 0
	for _, pre := range blocks {
		if pre.Parent == nil {
			continue
		}
		wrapCodeBlock(pre)
		wrapped++
	}
	return wrapped
}

// WrapCodeBlocksHTML applies WrapCodeBlocks to an HTML fragment or document.
func WrapCodeBlocksHTML(content string) (string, error) {
	tree, err := parseTree(content)
	if err != nil {
		return "", err
	}
	WrapCodeBlocks(tree.root)
	return tree.render()
}

func collectCodeBlocks(n *html.Node, out *[]*html.Node) {
	if isCodeBlock(n) {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectCodeBlocks(c, out)
	}
}

func isCodeBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "pre"
}

func wrapCodeBlock(pre *html.Node) {
	parent := pre.Parent

	label := newElement(atom.Div, CodeFilenameClass)
	if name := attrValue(pre, FilenameAttr); name != "" {
		label.AppendChild(&html.Node{Type: html.TextNode, Data: name})
	}
	button := newElement(atom.Button, CodeCopyClass)
	button.AppendChild(&html.Node{Type: html.TextNode, Data: CodeCopyLabel})

	header := newElement(atom.Div, CodeHeaderClass)
	header.AppendChild(label)
	header.AppendChild(button)

	container := newElement(atom.Div, CodeContainerClass)
	parent.InsertBefore(container, pre)
	parent.RemoveChild(pre)
	container.AppendChild(header)
	container.AppendChild(pre)
}

func newElement(a atom.Atom, class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
