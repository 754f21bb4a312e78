// Package dateutil coerces front matter dates and formats them for display.
package dateutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Sentinel errors for date handling.
var (
	// ErrInvalidDateFormat indicates an invalid display format string.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidDate indicates a value that cannot be coerced to a date.
	ErrInvalidDate = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when no display format is configured.
const DefaultDateFormat = "MMM D, YYYY"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"short":    "MMM D, YYYY",
}

// inputLayouts are tried in order when coercing a string. Layouts without a
// zone are interpreted as UTC.
var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
// Use brackets to escape literal text: [Posted] preserves "Posted" literally.
// Any non-token characters outside brackets are preserved as literals.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// Layout resolves a preset name (case-insensitive) or token format to a Go
// layout. An empty format uses DefaultDateFormat.
func Layout(format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// Coerce converts a decoded YAML value to a time. Accepted inputs are
// time.Time, strings in one of the supported layouts, and numbers, which are
// read as Unix milliseconds.
func Coerce(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case *time.Time:
		if val != nil {
			return *val, nil
		}
	case string:
		return parseString(val)
	case int:
		return time.UnixMilli(int64(val)).UTC(), nil
	case int64:
		return time.UnixMilli(val).UTC(), nil
	case uint64:
		if val > math.MaxInt64 {
			return time.Time{}, fmt.Errorf("%w: %d out of range", ErrInvalidDate, val)
		}
		return time.UnixMilli(int64(val)).UTC(), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, val)
		}
		return time.UnixMilli(int64(val)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, v)
}

func parseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidDate)
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
