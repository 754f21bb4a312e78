package pipeline

import (
	"regexp"
	"strings"
)

// FilenameAttr is the code block attribute carrying the display filename.
// It is set on the fenced code block during parsing, emitted on the rendered
// <pre> element, and read back by WrapCodeBlocks.
const FilenameAttr = "data-filename"

// languageNames maps fence languages to the label shown when the fence
// metadata names no file.
var languageNames = map[string]string{
	"astro":      "Astro",
	"bash":       "Shell",
	"css":        "CSS",
	"dockerfile": "Dockerfile",
	"go":         "Go",
	"html":       "HTML",
	"java":       "Java",
	"javascript": "JavaScript",
	"jinja":      "Jinja",
	"json":       "JSON",
	"jsx":        "JSX",
	"makefile":   "Makefile",
	"markdown":   "Markdown",
	"mdx":        "MDX",
	"nginx":      "Nginx",
	"python":     "Python",
	"rust":       "Rust",
	"sh":         "Shell",
	"sql":        "SQL",
	"systemd":    "Systemd Units",
	"terraform":  "Terraform",
	"toml":       "TOML",
	"tsx":        "TSX",
	"typescript": "TypeScript",
	"xml":        "XML",
	"yaml":       "YAML",
	"zsh":        "Shell",
}

// metaToken matches whitespace-separated tokens; quoted spans are atomic and
// may be glued to unquoted text (file="my app.go").
var metaToken = regexp.MustCompile(`(?:[^\s"']+|"[^"]*"|'[^']*')+`)

// MetaValue is one attribute parsed from code fence metadata.
// Flag is set for bare keys and for keys whose value is empty.
type MetaValue struct {
	Value string
	Flag  bool
}

// Meta holds the attributes of a code fence metadata string.
type Meta map[string]MetaValue

// String returns the value of key and whether it carries a non-empty value.
func (m Meta) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.Flag {
		return "", false
	}
	return v.Value, true
}

// Has reports whether key is present, as a flag or with a value.
func (m Meta) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// ParseMeta parses the free-form text that follows the language on a code
// fence, e.g. `file="main.go" copy`. Each token is split at its first "=";
// one layer of matching quotes is stripped from the value. When a key repeats
// the last occurrence wins. ParseMeta never fails: unparseable text simply
// yields fewer attributes.
func ParseMeta(raw string) Meta {
	meta := Meta{}
	for _, token := range metaToken.FindAllString(raw, -1) {
		key, value, hasValue := strings.Cut(token, "=")
		if hasValue {
			value = unquote(value)
		}
		if value == "" {
			meta[key] = MetaValue{Flag: true}
			continue
		}
		meta[key] = MetaValue{Value: value}
	}
	return meta
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// LanguageName returns the display name for a fence language, or "" when the
// language is unknown.
func LanguageName(lang string) string {
	return languageNames[strings.ToLower(strings.TrimSpace(lang))]
}

// ResolveFilename picks the label shown above a code block: the "file"
// attribute, else the language display name, else "".
func ResolveFilename(meta Meta, lang string) string {
	if file, ok := meta.String("file"); ok {
		return file
	}
	return LanguageName(lang)
}

// CodeFilename parses raw fence metadata and resolves the display filename.
func CodeFilename(rawMeta, lang string) string {
	return ResolveFilename(ParseMeta(rawMeta), lang)
}
