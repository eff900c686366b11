package dataprep

import (
	"regexp"
	"strings"
)

var nonLetter = regexp.MustCompile(`[^a-z\s]`)

// NormalizeText lowercases the input, replaces every character outside
// [a-z\s] with a space and collapses runs of whitespace. Always returns a
// string; empty input yields the empty string.
func NormalizeText(text string) string {
	t := strings.ToLower(text)
	t = nonLetter.ReplaceAllString(t, " ")
	return strings.Join(strings.Fields(t), " ")
}
