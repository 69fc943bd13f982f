package nlp

import "capcorpus/internal/textutil"

// Words returns the letter/digit runs inside text.
func Words(text string) []string {
	return textutil.WordRuns(text)
}
