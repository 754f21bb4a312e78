// Package mdblog builds a personal blog from a directory of Markdown posts.
//
// # Quick Start
//
// Load the posts, newest first:
//
//	posts, err := mdblog.GetAllBlogPosts(ctx, "content")
//	if err != nil {
//	    log.Fatal(err) // every invalid post is reported
//	}
//
// Or build the whole site:
//
//	site, err := mdblog.NewSite(mdblog.Config{
//	    Title:      "Notes",
//	    BaseURL:    "https://example.com/",
//	    ContentDir: "content",
//	    OutputDir:  "public",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := site.Build(ctx)
//
// # Posts
//
// A post is a .md or .mdx file directly inside the content directory whose
// name does not start with an underscore. Its ID is the file name without
// extension. Front matter fields:
//
//	---
//	title: Hello
//	description: First post
//	pubDate: 2024-01-15          # date, datetime, or Unix milliseconds
//	updatedDate: 2024-02-01      # optional, may be null
//	tags: [go, blogging]         # required, may be empty
//	image: ./cover.png           # optional, relative to the post
//	---
//
// Other keys are ignored.
//
// # Code Blocks
//
// Fenced code blocks are highlighted with chroma. The words after the
// language are metadata; file="name" sets the caption shown above the block,
// otherwise the language's display name is used:
//
//	```go file="main.go"
//
// Every rendered <pre> is wrapped for styling and a copy button:
//
//	<div class="code-container">
//	  <div class="code-header">
//	    <div class="code-filename">main.go</div>
//	    <button class="code-copy">Copy</button>
//	  </div>
//	  <pre ...>...</pre>
//	</div>
//
// # Output
//
//	public/
//	├── index.html
//	├── blog/{id}/index.html   (plus images and files the post links to)
//	├── tags/{slug}/index.html
//	├── rss.xml                (needs Config.BaseURL)
//	└── styles/
//	    ├── site.css
//	    └── chroma.css
//
// # Custom Assets
//
// Override the built-in theme using AssetLoader:
//
//	loader, err := mdblog.NewAssetLoader("/path/to/assets")
//	site, err := mdblog.NewSite(cfg, mdblog.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        ├── layout.html
//	        ├── index.html
//	        ├── post.html
//	        └── tag.html
package mdblog
