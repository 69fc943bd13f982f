package nlp

import (
	"bufio"
	_ "embed"
	"strings"

	"capcorpus/internal/language"
	"capcorpus/internal/textutil"
)

//go:embed english.txt
var englishStopwords string

var apostropheFolder = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Stopwords is an immutable set of words compared case-insensitively.
type Stopwords struct {
	words map[string]struct{}
}

// EnglishStopwords returns the built-in English stopword list.
func EnglishStopwords() *Stopwords {
	return ParseStopwords(englishStopwords)
}

// ParseStopwords builds a set from newline separated words. Blank lines and
// lines starting with '#' are ignored.
func ParseStopwords(list string) *Stopwords {
	set := &Stopwords{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(strings.NewReader(list))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set.words[textutil.Fold(word)] = struct{}{}
	}
	return set
}

// Contains reports whether word is a stopword. Typographic apostrophes are
// treated as ASCII ones.
func (s *Stopwords) Contains(word string) bool {
	if s == nil {
		return false
	}
	word = apostropheFolder.Replace(word)
	_, ok := s.words[textutil.Fold(word)]
	return ok
}

// Len returns the number of words in the set.
func (s *Stopwords) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// StopwordsFor returns the built-in list for a language code, or nil when
// none ships.
func StopwordsFor(lang string) *Stopwords {
	switch language.ToISO2(lang) {
	case "en":
		return EnglishStopwords()
	default:
		return nil
	}
}
