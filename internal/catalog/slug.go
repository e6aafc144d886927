package catalog

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Slugify derives the routing slug for a title: every whitespace run
// becomes one hyphen, then the whole string is lowercased. The mapping is
// deterministic and lossy; two titles that differ only in case or spacing
// share a slug, and the slug cannot be reversed back into the title.
func Slugify(title string) string {
	return strings.ToLower(whitespace.ReplaceAllString(title, "-"))
}
