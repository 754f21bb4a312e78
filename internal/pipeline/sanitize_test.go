package pipeline

import (
	"strings"
	"testing"
)

func TestNewSanitizePolicy(t *testing.T) {
	t.Parallel()

	policy := NewSanitizePolicy()

	tests := []struct {
		name  string
		input string
		want  string
		drop  string
	}{
		{"chroma spans", `<span class="line"><span class="kd">func</span></span>`, `<span class="kd">func</span>`, ""},
		{"filename attribute", `<pre data-filename="a.go" tabindex="0">x</pre>`, `data-filename="a.go"`, ""},
		{"task list", `<li><input checked="" disabled="" type="checkbox"> done</li>`, `type="checkbox"`, ""},
		{"event handler", `<a href="/x" onclick="steal()">x</a>`, `href="/x"`, "onclick"},
		{"javascript link", `<a href="javascript:alert(1)">x</a>`, "x", "javascript:"},
		{"iframe", `<iframe src="https://evil.example"></iframe>ok`, "ok", "<iframe"},
		{"no nofollow", `<a href="https://example.com/">x</a>`, `href="https://example.com/"`, "nofollow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := policy.Sanitize(tt.input)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Sanitize(%q) = %q, want it to contain %q", tt.input, got, tt.want)
			}
			if tt.drop != "" && strings.Contains(got, tt.drop) {
				t.Errorf("Sanitize(%q) = %q, should drop %q", tt.input, got, tt.drop)
			}
		})
	}
}
