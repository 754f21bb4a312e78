package pipeline

// Notes:
// - ParseMeta is total: every input yields a Meta, so there is no error table.
// - Duplicate keys resolve last-wins; see TestParseMeta "repeated key".

import (
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseMeta - Fence metadata tokenizing
// ---------------------------------------------------------------------------

func TestParseMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Meta
	}{
		{
			name: "empty string",
			raw:  "",
			want: Meta{},
		},
		{
			name: "whitespace only",
			raw:  "  \t ",
			want: Meta{},
		},
		{
			name: "double quoted value",
			raw:  `file="app.ts"`,
			want: Meta{"file": {Value: "app.ts"}},
		},
		{
			name: "single quoted value",
			raw:  `file='app.ts'`,
			want: Meta{"file": {Value: "app.ts"}},
		},
		{
			name: "unquoted value",
			raw:  `file=main.go`,
			want: Meta{"file": {Value: "main.go"}},
		},
		{
			name: "quoted value with spaces stays one token",
			raw:  `file="my app.go" copy`,
			want: Meta{
				"file": {Value: "my app.go"},
				"copy": {Flag: true},
			},
		},
		{
			name: "multiple attributes",
			raw:  `file="app.ts" highlight="1-3"`,
			want: Meta{
				"file":      {Value: "app.ts"},
				"highlight": {Value: "1-3"},
			},
		},
		{
			name: "bare key is a flag",
			raw:  `copy`,
			want: Meta{"copy": {Flag: true}},
		},
		{
			name: "empty value is a flag",
			raw:  `file=`,
			want: Meta{"file": {Flag: true}},
		},
		{
			name: "empty quoted value is a flag",
			raw:  `file=""`,
			want: Meta{"file": {Flag: true}},
		},
		{
			name: "value split at first equals sign",
			raw:  `query=a=b`,
			want: Meta{"query": {Value: "a=b"}},
		},
		{
			name: "mismatched outer quotes kept",
			raw:  `label="a"'b'`,
			want: Meta{"label": {Value: `"a"'b'`}},
		},
		{
			name: "repeated key last wins",
			raw:  `file=a.go file=b.go`,
			want: Meta{"file": {Value: "b.go"}},
		},
		{
			name: "flag then value for same key",
			raw:  `file file=c.go`,
			want: Meta{"file": {Value: "c.go"}},
		},
		{
			name: "unterminated quote drops the quote",
			raw:  `file="main.go`,
			want: Meta{
				"file":    {Flag: true},
				"main.go": {Flag: true},
			},
		},
		{
			name: "brace attribute text is just another token",
			raw:  `{1,3}`,
			want: Meta{"{1,3}": {Flag: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseMeta(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMeta(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMeta_Accessors(t *testing.T) {
	t.Parallel()

	meta := ParseMeta(`file="x.go" copy`)

	if v, ok := meta.String("file"); !ok || v != "x.go" {
		t.Errorf("String(file) = %q, %v; want %q, true", v, ok, "x.go")
	}
	if _, ok := meta.String("copy"); ok {
		t.Error("String(copy) ok = true for a flag, want false")
	}
	if !meta.Has("copy") {
		t.Error("Has(copy) = false, want true")
	}
	if meta.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestResolveFilename - Display filename resolution
// ---------------------------------------------------------------------------

func TestResolveFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta string
		lang string
		want string
	}{
		{"file attribute wins over language", `file="app.ts" highlight="1-3"`, "typescript", "app.ts"},
		{"no metadata uses language table", "", "go", "Go"},
		{"unknown language", "", "foobar", ""},
		{"empty language", "", "", ""},
		{"file without language", `file=Dockerfile`, "", "Dockerfile"},
		{"bare file flag falls back to language", `file`, "rust", "Rust"},
		{"empty file value falls back to language", `file=""`, "python", "Python"},
		{"other keys ignored", `copy title="demo"`, "bash", "Shell"},
		{"language lookup is case insensitive", "", "TypeScript", "TypeScript"},
		{"shell aliases", "", "zsh", "Shell"},
		{"multi-word display name", "", "systemd", "Systemd Units"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveFilename(ParseMeta(tt.meta), tt.lang)
			if got != tt.want {
				t.Errorf("ResolveFilename(%q, %q) = %q, want %q", tt.meta, tt.lang, got, tt.want)
			}
			if again := CodeFilename(tt.meta, tt.lang); again != got {
				t.Errorf("CodeFilename(%q, %q) = %q, want %q", tt.meta, tt.lang, again, got)
			}
		})
	}
}

func TestLanguageName_Table(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"astro": "Astro", "bash": "Shell", "css": "CSS", "dockerfile": "Dockerfile",
		"go": "Go", "html": "HTML", "java": "Java", "javascript": "JavaScript",
		"jinja": "Jinja", "json": "JSON", "jsx": "JSX", "makefile": "Makefile",
		"markdown": "Markdown", "mdx": "MDX", "nginx": "Nginx", "python": "Python",
		"rust": "Rust", "sh": "Shell", "sql": "SQL", "systemd": "Systemd Units",
		"terraform": "Terraform", "toml": "TOML", "tsx": "TSX",
		"typescript": "TypeScript", "xml": "XML", "yaml": "YAML", "zsh": "Shell",
	}

	if len(languageNames) != len(want) {
		t.Errorf("language table has %d entries, want %d", len(languageNames), len(want))
	}
	for lang, name := range want {
		if got := LanguageName(lang); got != name {
			t.Errorf("LanguageName(%q) = %q, want %q", lang, got, name)
		}
	}
}
