package classify

import "fmt"

// Category is the kind of single-token difference found at a slot.
type Category uint8

const (
	None Category = iota
	CaseDiff
	PunctuationDiff
	CaseAndPunctuationDiff
	StemDiff
	DigitDiff
	IntraWordPunctuationDiff
	UnknownDiff
	SimpleDiff
)

var categoryNames = [...]string{
	None:                     "none",
	CaseDiff:                 "case",
	PunctuationDiff:          "punctuation",
	CaseAndPunctuationDiff:   "case_and_punctuation",
	StemDiff:                 "stem",
	DigitDiff:                "digit",
	IntraWordPunctuationDiff: "intra_word_punctuation",
	UnknownDiff:              "unknown",
	SimpleDiff:               "simple",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Categories lists every category in label order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Scheme holds the integers written to output records for each category.
type Scheme struct {
	None                     int `toml:"none"`
	CaseDiff                 int `toml:"case_diff"`
	PunctuationDiff          int `toml:"punctuation_diff"`
	CaseAndPunctuationDiff   int `toml:"case_and_punctuation_diff"`
	StemDiff                 int `toml:"stem_diff"`
	DigitDiff                int `toml:"digit_diff"`
	IntraWordPunctuationDiff int `toml:"intra_word_punctuation_diff"`
	UnknownDiff              int `toml:"unknown_diff"`
	SimpleDiff               int `toml:"simple_diff"`
}

// DefaultScheme returns the integers used by existing corpora.
func DefaultScheme() Scheme {
	return Scheme{
		None:                     0,
		CaseDiff:                 1,
		PunctuationDiff:          2,
		CaseAndPunctuationDiff:   3,
		StemDiff:                 4,
		DigitDiff:                5,
		IntraWordPunctuationDiff: 6,
		UnknownDiff:              7,
		SimpleDiff:               1,
	}
}

func (s Scheme) values() []int {
	return []int{
		None:                     s.None,
		CaseDiff:                 s.CaseDiff,
		PunctuationDiff:          s.PunctuationDiff,
		CaseAndPunctuationDiff:   s.CaseAndPunctuationDiff,
		StemDiff:                 s.StemDiff,
		DigitDiff:                s.DigitDiff,
		IntraWordPunctuationDiff: s.IntraWordPunctuationDiff,
		UnknownDiff:              s.UnknownDiff,
		SimpleDiff:               s.SimpleDiff,
	}
}

// Value returns the integer for c.
func (s Scheme) Value(c Category) int {
	values := s.values()
	if int(c) < len(values) {
		return values[c]
	}
	return s.None
}

// Category maps an integer back to a category for the given mode.
func (s Scheme) Category(mode Mode, v int) (Category, error) {
	if mode == ModeSimple {
		switch v {
		case s.None:
			return None, nil
		case s.SimpleDiff:
			return SimpleDiff, nil
		}
		return None, fmt.Errorf("unknown simple label %d", v)
	}
	values := s.values()
	for c := None; c <= UnknownDiff; c++ {
		if values[c] == v {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown category label %d", v)
}

// Validate reports taxonomy categories sharing a value and a simple label
// equal to the none label.
func (s Scheme) Validate() error {
	values := s.values()
	seen := make(map[int]Category, len(values))
	for c := None; c <= UnknownDiff; c++ {
		if prev, ok := seen[values[c]]; ok {
			return fmt.Errorf("category labels %s and %s share value %d", prev, c, values[c])
		}
		seen[values[c]] = c
	}
	if s.SimpleDiff == s.None {
		return fmt.Errorf("simple_diff label must differ from none (%d)", s.None)
	}
	return nil
}
