// Package sanitize strips markup and normalizes contact strings in user input
// before it reaches storage.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict allows no elements at all; script and style bodies are dropped with their tags.
var strict = bluemonday.StrictPolicy()

// The policy escapes ampersands and quotes in text. Neither can open markup
// once '<' stays escaped, so they are restored to keep "Tom & Jerry" and
// O'Brien readable.
var textEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

var phoneDisallowed = regexp.MustCompile(`[^0-9+\-\s()]`)

// String removes every tag (and the bodies of script-like blocks) from s and trims surrounding whitespace.
func String(s string) string {
	out := strict.Sanitize(strings.TrimSpace(s))
	return strings.TrimSpace(textEntities.Replace(out))
}

// Value applies String to every string leaf of a decoded JSON value.
// Maps and slices are rewritten in place; other leaves are returned unchanged.
func Value(v any) any {
	switch t := v.(type) {
	case string:
		return String(t)
	case map[string]any:
		Map(t)
		return t
	case []any:
		for i := range t {
			t[i] = Value(t[i])
		}
		return t
	default:
		return v
	}
}

// Map sanitizes every string leaf of m in place.
func Map(m map[string]any) {
	for k, v := range m {
		m[k] = Value(v)
	}
}

// Email lower-cases and trims an address.
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Phone drops every character outside digits, '+', '-', whitespace and parentheses.
func Phone(phone string) string {
	return phoneDisallowed.ReplaceAllString(phone, "")
}
