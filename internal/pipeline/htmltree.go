package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bodyContext is the parent used for fragment parsing so the parser does not
// synthesize <html>, <head> and <body>.
var bodyContext = &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}

// htmlTree is parsed post markup. Rendered post bodies are fragments; a full
// document is kept whole so its doctype survives.
type htmlTree struct {
	root     *html.Node
	fragment bool
}

func isDocument(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// parseTree parses content as a document or, more commonly, as a fragment
// whose top-level nodes hang off a synthetic document root.
func parseTree(content string) (*htmlTree, error) {
	if isDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return &htmlTree{root: doc}, nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(content), bodyContext)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &htmlTree{root: root, fragment: true}, nil
}

// render serializes the tree. Fragments render their top-level nodes only.
func (t *htmlTree) render() (string, error) {
	var sb strings.Builder
	if !t.fragment {
		err := html.Render(&sb, t.root)
		return sb.String(), err
	}
	for n := t.root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
