// Package text holds the user-text rules shared by posts and comments.
package text

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rivo/uniseg"
)

// strictPolicy strips every tag. bluemonday policies are safe for concurrent use.
var strictPolicy = bluemonday.StrictPolicy()

// maxCleanPasses bounds how many layers of entity encoding are unwrapped.
const maxCleanPasses = 4

// Clean removes HTML markup and surrounding whitespace from user input.
// Entities are decoded before sanitising so encoded tags are stripped too.
// bluemonday escapes the text it keeps; the API returns JSON, so that
// escaping is decoded back to the characters the user typed.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	cur := s
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(cur)))
		if next == cur {
			break
		}
		cur = next
	}
	return strings.TrimSpace(cur)
}

// Length counts user-perceived characters (grapheme clusters)
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
