package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// ErrUnknownStyle indicates a highlight style chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlight style")

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterOptions)

type converterOptions struct {
	style       string
	lineNumbers bool
	hardWraps   bool
	unsafe      bool
	sanitize    bool
}

// WithHighlightStyle selects the chroma style. An empty name keeps the default.
func WithHighlightStyle(style string) ConverterOption {
	return func(o *converterOptions) {
		if style != "" {
			o.style = style
		}
	}
}

// WithLineNumbers enables inline line numbers in highlighted code.
func WithLineNumbers(enabled bool) ConverterOption {
	return func(o *converterOptions) { o.lineNumbers = enabled }
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps(enabled bool) ConverterOption {
	return func(o *converterOptions) { o.hardWraps = enabled }
}

// WithUnsafeHTML lets raw HTML in posts through to the output.
func WithUnsafeHTML(enabled bool) ConverterOption {
	return func(o *converterOptions) { o.unsafe = enabled }
}

// WithSanitize filters rendered posts through NewSanitizePolicy before code
// blocks are wrapped. Pair it with WithUnsafeHTML to keep the raw HTML that
// the policy allows.
func WithSanitize(enabled bool) ConverterOption {
	return func(o *converterOptions) { o.sanitize = enabled }
}

// GoldmarkConverter converts Markdown to HTML fragments using goldmark.
// Fenced code blocks are highlighted by chroma and wrapped with a filename
// header and copy button (see WrapCodeBlocks).
type GoldmarkConverter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy // nil when sanitizing is off
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// footnotes, heading IDs and code filename highlighting.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	o := converterOptions{style: DefaultHighlightStyle}
	for _, opt := range opts {
		opt(&o)
	}

	formatOpts := []chromahtml.Option{chromahtml.WithClasses(true)}
	if o.lineNumbers {
		// Table mode would emit a second <pre> per block.
		formatOpts = append(formatOpts,
			chromahtml.WithLineNumbers(true),
			chromahtml.LineNumbersInTable(false),
		)
	}

	var rendererOpts []renderer.Option
	if o.hardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if o.unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			NewCodeFilename(
				highlighting.WithStyle(o.style),
				highlighting.WithFormatOptions(formatOpts...),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	c := &GoldmarkConverter{md: md}
	if o.sanitize {
		c.policy = NewSanitizePolicy()
	}
	return c
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		fragment := buf.String()
		if c.policy != nil {
			fragment = c.policy.Sanitize(fragment)
		}
		out, err := WrapCodeBlocksHTML(fragment)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: out}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// ChromaCSS returns the stylesheet for chroma's CSS classes in the given style.
func ChromaCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	s, ok := styles.Registry[style]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HasHighlightStyle reports whether chroma knows the named style.
func HasHighlightStyle(style string) bool {
	_, ok := styles.Registry[style]
	return ok
}
