package mdblog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TagSlug maps a tag to its URL segment: accents stripped, lower case, with
// runs of anything other than letters and digits collapsed to a single hyphen.
// "Go Modules" and "go-modules" share the slug "go-modules".
func TagSlug(tag string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(foldAccents(tag)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// foldAccents drops combining marks after canonical decomposition.
// Letters without a decomposition (ß, ø, CJK) pass through.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
