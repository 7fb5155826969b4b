// Package htmlsanitize cleans text that arrives from the models backend
// before it is placed in a page.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every element and attribute.
var strict = bluemonday.StrictPolicy()

// PlainText removes all markup from s and returns unescaped text with runs of
// whitespace collapsed. The result is meant for auto-escaping templates, so
// entities are decoded rather than left for a second escape.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	cleaned := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(cleaned), " ")
}
