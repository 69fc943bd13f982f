package nlp

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
	porterstemmer "github.com/reiver/go-porterstemmer"

	"capcorpus/internal/language"
)

// Stemmer names accepted by NewStemmer.
const (
	StemmerSnowball = "snowball"
	StemmerPorter   = "porter"
)

// Stemmer reduces a word to its stem. Implementations must be safe for
// concurrent use.
type Stemmer interface {
	Stem(word string) string
	Name() string
}

// NewStemmer returns the stemmer registered under name for the given
// language code. Empty selects porter.
func NewStemmer(name, lang string) (Stemmer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StemmerSnowball:
		snowballLang := language.SnowballName(lang)
		if snowballLang == "" {
			return PorterStemmer{}, nil
		}
		return SnowballStemmer{language: snowballLang}, nil
	case "", StemmerPorter:
		return PorterStemmer{}, nil
	default:
		return nil, fmt.Errorf("unknown stemmer %q", name)
	}
}

// SnowballStemmer wraps the snowball algorithms.
type SnowballStemmer struct {
	language string
}

// Stem returns the lowercased snowball stem of word. Stopwords are stemmed
// too so that "having" and "have" compare equal.
func (s SnowballStemmer) Stem(word string) string {
	if word == "" {
		return ""
	}
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil {
		return strings.ToLower(word)
	}
	return stemmed
}

func (s SnowballStemmer) Name() string { return StemmerSnowball + ":" + s.language }

// PorterStemmer applies the original English Porter algorithm.
type PorterStemmer struct{}

func (PorterStemmer) Stem(word string) string {
	if word == "" {
		return ""
	}
	return porterstemmer.StemString(word)
}

func (PorterStemmer) Name() string { return StemmerPorter }
