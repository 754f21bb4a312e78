// Package assets provides the blog theme: a CSS style and a set of
// html/template pages.
//
// A theme lives in a tree laid out as
//
//	styles/{name}.css            site stylesheet, published as styles/site.css
//	templates/{name}/layout.html document shell, invokes the "content" block
//	templates/{name}/index.html  post listing
//	templates/{name}/post.html   single post
//	templates/{name}/tag.html    posts for one tag
//
// EmbeddedLoader reads the tree compiled into the binary ("default").
// FilesystemLoader reads the same layout from theme.assetPath and refuses
// files that resolve outside it through symlinks. AssetResolver, used by the
// site builder, layers the directory over the embedded tree: a custom style
// replaces the embedded one of the same name, and a custom template set may
// hold only the pages it changes.
//
// Theme names are identifiers ([A-Za-z0-9][A-Za-z0-9_-]*, at most 64 bytes),
// so a name never carries a separator or a dot.
package assets
