package identity

import (
	"regexp"
	"strings"
)

var (
	apostrophes = strings.NewReplacer("'", "", "’", "", "ʼ", "", "`", "", "´", "")
	hyphenRun   = regexp.MustCompile(`[\s\-]+`)
)

// Slugify derives the lookup slug for a display name: apostrophe variants
// stripped, whitespace and hyphen runs collapsed to a single hyphen, outer
// hyphens trimmed, lower-cased. Empty in, empty out.
func Slugify(name string) string {
	slug := apostrophes.Replace(name)
	slug = hyphenRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}
