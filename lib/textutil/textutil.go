package textutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	newlineRegex    = regexp.MustCompile(`[\r\n]+`)
	spaceRegex      = regexp.MustCompile(` +`)
)

// NormalizeSpace trims the string and collapses any internal whitespace run
// into a single space.
func NormalizeSpace(s string) string {
	s = strings.TrimSpace(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// FlattenDocumentText normalizes text extracted from an HTML document:
// newline runs become a single newline, space runs a single space, and
// leading/trailing whitespace is trimmed.
func FlattenDocumentText(s string) string {
	s = newlineRegex.ReplaceAllString(s, "\n")
	s = spaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
