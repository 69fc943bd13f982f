package classify

import (
	"fmt"
	"strings"

	"capcorpus/internal/expand"
	"capcorpus/internal/textutil"
)

// Mode selects the label set.
type Mode string

const (
	ModeTaxonomy Mode = "taxonomy"
	ModeSimple   Mode = "simple"
)

// ParseMode validates a mode name. Empty selects the taxonomy.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ModeTaxonomy:
		return ModeTaxonomy, nil
	case ModeSimple:
		return ModeSimple, nil
	default:
		return "", fmt.Errorf("unknown labeling mode %q", name)
	}
}

// Tokenizer extracts maximal alphanumeric runs from a token.
type Tokenizer func(string) []string

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// StopwordSet answers case-insensitive stopword membership.
type StopwordSet interface {
	Contains(word string) bool
}

// Classifier holds everything needed to label a slot sequence. A Classifier
// is immutable after construction and may be shared across goroutines.
type Classifier struct {
	Mode          Mode
	SkipStopwords bool
	Tokenize      Tokenizer
	Stemmer       Stemmer
	Stopwords     StopwordSet
}

// Result is the labeled form of one slot sequence. Categories, Corrections
// and Baseline are parallel to Slots.
type Result struct {
	Slots       expand.Slots
	Categories  []Category
	Corrections []string
	Baseline    []string
}

// Labels returns the category integers under scheme.
func (r Result) Labels(scheme Scheme) []int {
	out := make([]int, len(r.Categories))
	for i, c := range r.Categories {
		out[i] = scheme.Value(c)
	}
	return out
}

// Counts tallies the assigned categories, excluding None.
func (r Result) Counts() map[Category]int {
	counts := make(map[Category]int)
	for _, c := range r.Categories {
		if c != None {
			counts[c]++
		}
	}
	return counts
}

// Classify realigns and labels slots. The input is not modified.
func (c *Classifier) Classify(slots expand.Slots) Result {
	res := Result{
		Slots:       slots.Clone(),
		Categories:  make([]Category, len(slots)),
		Corrections: make([]string, len(slots)),
		Baseline:    expand.AutogenReconstruct(slots),
	}
	if res.Slots == nil {
		res.Slots = expand.Slots{}
	}

	for i := range res.Slots {
		if res.Slots[i].Agreement != expand.BothDiffer {
			continue
		}
		if !realign(res.Slots, i) {
			continue
		}
		autogen := res.Slots[i].AutogenToken
		manual := res.Slots[i].ManualToken
		if c.SkipStopwords && c.Stopwords != nil && (c.Stopwords.Contains(autogen) || c.Stopwords.Contains(manual)) {
			continue
		}
		category := c.categorize(autogen, manual)
		if category == None {
			continue
		}
		res.Categories[i] = category
		res.Corrections[i] = manual
	}
	return res
}

// realign splits the manual block at slots[i] across its slots when the
// token counts match. Slots already split have ExtraRepeats 0 and a single
// token, so they pass through unchanged.
func realign(slots expand.Slots, i int) bool {
	n := slots[i].ExtraRepeats + 1
	parts := strings.Fields(slots[i].ManualToken)
	if len(parts) != n || i+n > len(slots) {
		return false
	}
	for k := 1; k < n; k++ {
		if slots[i+k].Agreement != expand.BothDiffer {
			return false
		}
	}
	for k, part := range parts {
		slots[i+k].ManualToken = part
		slots[i+k].ExtraRepeats = 0
	}
	return true
}

// categorize labels a realigned pair. Identical tokens fall under rule one
// and come back as CaseDiff.
func (c *Classifier) categorize(autogen, manual string) Category {
	if c.Mode == ModeSimple {
		return SimpleDiff
	}
	return c.rule(autogen, manual)
}

func (c *Classifier) rule(autogen, manual string) Category {
	foldedAutogen, foldedManual := textutil.Fold(autogen), textutil.Fold(manual)
	switch {
	case textutil.EqualFold(autogen, manual):
		return CaseDiff
	case textutil.StripPunctuation(autogen) == textutil.StripPunctuation(manual):
		return PunctuationDiff
	case textutil.StripPunctuation(foldedAutogen) == textutil.StripPunctuation(foldedManual):
		return CaseAndPunctuationDiff
	case c.Stemmer != nil && c.Stemmer.Stem(foldedAutogen) == c.Stemmer.Stem(foldedManual):
		return StemDiff
	case textutil.HasLeadingDigit(manual) || textutil.HasLeadingDigit(autogen):
		return DigitDiff
	case c.wordForm(autogen) == c.wordForm(manual):
		return IntraWordPunctuationDiff
	default:
		return UnknownDiff
	}
}

func (c *Classifier) wordForm(token string) string {
	joined := textutil.JoinedWordRuns(token)
	if c.Tokenize != nil {
		joined = strings.Join(c.Tokenize(token), "")
	}
	return textutil.TrimPunctuation(textutil.Fold(joined))
}
