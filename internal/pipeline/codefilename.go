package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// codeFilenameTransformer resolves the display filename of every fenced code
// block from its info string and stores it as the FilenameAttr attribute.
type codeFilenameTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *codeFilenameTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var info []byte
		if block.Info != nil {
			info = block.Info.Segment.Value(source)
		}
		lang, meta, attrs := splitInfo(info)

		// Once the node carries attributes the highlighter stops reading the
		// {...} suffix itself, so those are copied onto the node first.
		for _, attr := range attrs {
			block.SetAttribute(attr.Name, attr.Value)
		}
		block.SetAttributeString(FilenameAttr, []byte(CodeFilename(meta, lang)))
		return ast.WalkSkipChildren, nil
	})
}

// splitInfo splits a fence info string into the language (up to the first
// space, as goldmark does), the free-form metadata, and any trailing
// {key=value} attribute block.
func splitInfo(info []byte) (lang, meta string, attrs parser.Attributes) {
	if i := bytes.IndexByte(info, ' '); i >= 0 {
		lang, meta = string(info[:i]), string(info[i+1:])
	} else {
		lang = string(info)
	}

	if i := strings.IndexByte(meta, '{'); i >= 0 {
		if parsed, ok := parser.ParseAttributes(text.NewReader([]byte(meta[i:]))); ok {
			attrs = parsed
			meta = meta[:i]
		}
	}
	return lang, strings.TrimSpace(meta), attrs
}

// filenameOf reads FilenameAttr from a highlighting code block context.
func filenameOf(ctx highlighting.CodeBlockContext) string {
	attrs := ctx.Attributes()
	if attrs == nil {
		return ""
	}
	v, ok := attrs.GetString(FilenameAttr)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case []byte:
		return string(s)
	case string:
		return s
	default:
		return ""
	}
}

// filenamePreWrapper is a chroma PreWrapper that adds FilenameAttr to the
// <pre> element of highlighted code.
type filenamePreWrapper struct {
	filename string
}

func (p filenamePreWrapper) Start(code bool, styleAttr string) string {
	if !code {
		return "<pre" + styleAttr + ">"
	}
	return fmt.Sprintf(`<pre%s %s="%s"><code>`, styleAttr, FilenameAttr, html.EscapeString(p.filename))
}

func (p filenamePreWrapper) End(code bool) string {
	if !code {
		return "</pre>"
	}
	return "</code></pre>"
}

// codeBlockOptions is the highlighting.WithCodeBlockOptions hook.
func codeBlockOptions(ctx highlighting.CodeBlockContext) []chromahtml.Option {
	return []chromahtml.Option{
		chromahtml.WithPreWrapper(filenamePreWrapper{filename: filenameOf(ctx)}),
	}
}

// renderPlainCodeBlock is the highlighting.WithWrapperRenderer hook. Chroma
// writes its own <pre> for highlighted blocks; blocks without a lexer get the
// same element here.
func renderPlainCodeBlock(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if ctx.Highlighted() {
		return
	}
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return
	}
	_, _ = fmt.Fprintf(w, `<pre %s="%s"><code`, FilenameAttr, html.EscapeString(filenameOf(ctx)))
	if lang, ok := ctx.Language(); ok && len(lang) > 0 {
		_, _ = fmt.Fprintf(w, ` class="language-%s"`, html.EscapeString(string(lang)))
	}
	_ = w.WriteByte('>')
}

// codeFilename is a goldmark extension that attaches display filenames to
// fenced code blocks and renders them through chroma.
type codeFilename struct {
	options []highlighting.Option
}

// NewCodeFilename returns the code filename extension. The options are
// passed to goldmark-highlighting; the pre wrapper and wrapper renderer hooks
// are owned by the extension and appended last.
func NewCodeFilename(opts ...highlighting.Option) goldmark.Extender {
	return &codeFilename{options: opts}
}

// Extend implements goldmark.Extender.
func (e *codeFilename) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&codeFilenameTransformer{}, 100),
	))

	opts := append([]highlighting.Option{}, e.options...)
	opts = append(opts,
		highlighting.WithCodeBlockOptions(codeBlockOptions),
		highlighting.WithWrapperRenderer(renderPlainCodeBlock),
	)
	highlighting.NewHighlighting(opts...).Extend(m)
}
