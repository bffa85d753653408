// Package sanitize normalizes untrusted form input before anything
// downstream sees it: surrounding whitespace is trimmed, markup tags are
// removed and quotes/angle brackets are HTML-entity escaped.
package sanitize

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// escaper covers quotes and angle brackets only. Ampersands are left
// untouched so that sanitizing already-sanitized text is a no-op.
var escaper = strings.NewReplacer(
	`"`, "&quot;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
)

// String trims, strips tags and escapes a single value. Trimming runs
// again after tag stripping: removing a tag can expose whitespace that
// sat inside it, and the result must not change under a second pass.
// Idempotent: String(String(s)) == String(s).
func String(s string) string {
	s = strings.TrimSpace(s)
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return escaper.Replace(s)
}

// Value sanitizes an arbitrary decoded JSON value, descending into
// arrays and objects. Non-string scalars pass through unchanged.
func Value(v any) any {
	switch t := v.(type) {
	case string:
		return String(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Value(e)
		}
		return out
	case map[string]any:
		return Map(t)
	default:
		return v
	}
}

// Map sanitizes every value of a decoded JSON object.
func Map(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Value(v)
	}
	return out
}
