package textutil

import (
	"golang.org/x/text/cases"
)

// Fold returns the caseless form of s. A fresh Caser is built per call
// because cases.Caser keeps internal state.
func Fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
