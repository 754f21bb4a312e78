package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// NewSanitizePolicy returns the policy applied to rendered posts when
// sanitizing is enabled. It starts from bluemonday's UGC policy and keeps what
// the converter itself emits: chroma classes, tabindex on <pre>, data-filename,
// task list checkboxes and footnote links.
func NewSanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)

	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("pre", "code", "span", "div", "sup", "a", "li", "ol", "section", "hr")
	p.AllowAttrs("tabindex").Matching(bluemonday.Integer).OnElements("pre")
	p.AllowAttrs("data-filename").OnElements("pre")
	p.AllowAttrs("role").Matching(regexp.MustCompile(`^doc-[a-z]+$`)).OnElements("a", "div", "section", "hr")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	p.AllowElements("section")

	return p
}
