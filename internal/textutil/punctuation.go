package textutil

import (
	"strings"
	"unicode"
)

// ASCIIPunctuation mirrors the classic ASCII punctuation set, symbols included.
const ASCIIPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// apostrophes are dropped inside tokens so contractions compare equal to
// their unpunctuated spelling ("don't" vs "dont").
var apostropheRemover = strings.NewReplacer("'", "", "’", "", "‘", "", "ʼ", "")

// IsPunctuation reports whether r is ASCII punctuation or a Unicode
// punctuation rune (curly quotes, dashes, ellipses).
func IsPunctuation(r rune) bool {
	if r < unicode.MaxASCII {
		return strings.ContainsRune(ASCIIPunctuation, r)
	}
	return unicode.IsPunct(r)
}

// TrimPunctuation strips leading and trailing punctuation runes. Interior
// punctuation is kept.
func TrimPunctuation(s string) string {
	return strings.TrimFunc(s, IsPunctuation)
}

// StripPunctuation drops apostrophes anywhere in s and then trims edge
// punctuation. Hyphens and other interior marks survive, so compound words
// keep their shape.
func StripPunctuation(s string) string {
	return TrimPunctuation(apostropheRemover.Replace(s))
}
