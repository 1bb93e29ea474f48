package extractor

import (
	"regexp"
	"strings"
)

// whitespaceRe also covers U+00A0: parsed documents hand back non-breaking
// spaces where the source HTML wrote &nbsp;.
var whitespaceRe = regexp.MustCompile(`[\s\x{00A0}]+`)

// Clean normalises element text: entity leftovers are resolved first, then
// whitespace runs collapse to single spaces. Cleaning is idempotent; running
// it over already-clean text is a no-op.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
