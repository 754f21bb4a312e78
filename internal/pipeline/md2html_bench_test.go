//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkGoldmarkToHTML benchmarks post body conversion, highlighting and
// code block wrapping included.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"paragraph", strings.Repeat("This is a paragraph with some text.\n\n", 10)},
		{"code_blocks", codeFencesPost(10)},
		{"mixed_small", articlePost(10)},
		{"mixed_large", articlePost(200)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, input.content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkWrapCodeBlocksHTML isolates the tree wrapper from conversion.
func BenchmarkWrapCodeBlocksHTML(b *testing.B) {
	fragment := strings.Repeat(`<p>text</p><pre data-filename="main.go"><code>x</code></pre>`, 50)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := WrapCodeBlocksHTML(fragment); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseMeta benchmarks fence metadata tokenizing.
func BenchmarkParseMeta(b *testing.B) {
	raw := `file="cmd/server/main.go" highlight="1-3,7" title='entry point' copy`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ParseMeta(raw)
	}
}

// codeFencesPost returns a post body with n filename-tagged Go fences.
func codeFencesPost(n int) string {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "## Step %d\n\n", i+1)
		fmt.Fprintf(&sb, "```go file=\"step%d.go\" highlight=\"2\"\n", i+1)
		sb.WriteString("func step() error {\n\treturn nil\n}\n```\n\n")
	}
	return sb.String()
}

// articlePost returns a post body of n sections mixing prose, lists and fences.
func articlePost(n int) string {
	var sb strings.Builder
	sb.WriteString("An intro with **bold**, *emphasis* and a [link](https://example.com).\n\n")
	for i := range n {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("Some prose with `inline code` and an image ![alt](./cover.png).\n\n")
		sb.WriteString("- first point\n- second point\n\n")
		switch i % 4 {
		case 0:
			sb.WriteString("```sh title=\"terminal\"\ngo build ./...\n```\n\n")
		case 2:
			sb.WriteString("```\nplain block\n```\n\n")
		}
	}
	return sb.String()
}
