// Package pipeline implements the Markdown-to-HTML stage of the blog build.
//
// A post body goes through these steps:
//   - goldmark parses the Markdown; an AST transformer resolves each fenced
//     code block's display filename from its fence metadata (ParseMeta,
//     ResolveFilename) and stores it as the data-filename attribute
//   - goldmark-highlighting renders code through chroma, carrying
//     data-filename onto the <pre> element
//   - the rendered tree is parsed with golang.org/x/net/html and every <pre>
//     is wrapped with a filename header and copy button (WrapCodeBlocks)
//   - relative image and link references are rewritten to site URLs
//     (RewriteRelativePaths) and headings are collected for the table of
//     contents (ExtractHeadings)
//
// Page layout and site structure live in the root mdblog package.
package pipeline
