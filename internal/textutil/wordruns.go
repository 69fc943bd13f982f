package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// wordRunPattern matches maximal runs of letters, combining marks, digits,
// and underscores.
var wordRunPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// WordRuns returns the maximal alphanumeric substrings of s in order.
// The result is never nil.
func WordRuns(s string) []string {
	runs := wordRunPattern.FindAllString(s, -1)
	if runs == nil {
		return []string{}
	}
	return runs
}

// JoinedWordRuns concatenates WordRuns(s) without separators.
func JoinedWordRuns(s string) string {
	return strings.Join(WordRuns(s), "")
}

// HasLeadingDigit reports whether s starts with a decimal digit.
func HasLeadingDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
