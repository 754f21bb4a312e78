package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Heading is one entry of a post's table of contents.
type Heading struct {
	Level  int    // 1-6, as written
	Depth  int    // 1-based nesting depth after normalization
	ID     string // anchor ID generated by the converter
	Text   string // plain text content
	Number string // hierarchical number, e.g. "1.2."
}

// headingPattern matches h1-h6 tags with id attribute.
// Captures: 1=level, 2=id, 3=inner HTML (may contain inline tags)
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes tags, decodes entities and trims whitespace, so the
// text is not double-encoded when a template escapes it again.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// ExtractHeadings returns the headings of a rendered post between minDepth
// and maxDepth, numbered hierarchically. Headings without IDs are skipped.
func ExtractHeadings(content string, minDepth, maxDepth int) []Heading {
	matches := headingPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	numbering := &numberingState{}
	var headings []Heading
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		num, depth := numbering.next(level)
		headings = append(headings, Heading{
			Level:  level,
			Depth:  depth,
			ID:     html.UnescapeString(m[2]),
			Text:   stripHTMLTags(m[3]),
			Number: num,
		})
	}
	return headings
}

// numberingState tracks hierarchical numbering for TOC entries.
// The shallowest first heading becomes depth 1 and skipped levels collapse.
type numberingState struct {
	counters     [6]int // counters[0] = depth 1 count, etc.
	minLevelSeen int    // 0 = not set
	lastDepth    int
}

// next returns the number string and effective depth for a heading level.
func (n *numberingState) next(level int) (numStr string, depth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	depth = level - n.minLevelSeen + 1
	if depth < 1 {
		depth = 1
	}

	// H2 -> H4 nests one level, not two.
	if n.lastDepth > 0 && depth > n.lastDepth+1 {
		depth = n.lastDepth + 1
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++
	n.lastDepth = depth

	parts := make([]string, 0, depth)
	for i := 0; i < depth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", depth
}
