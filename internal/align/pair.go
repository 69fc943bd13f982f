package align

import "strings"

// Pair holds the whitespace tokens of one autogen/manual transcript pair.
type Pair struct {
	Autogen []string
	Manual  []string
}

// NewPair tokenizes both transcripts on whitespace. A side with no tokens is
// reported as a MalformedInputError.
func NewPair(autogenText, manualText string) (Pair, error) {
	autogen := strings.Fields(autogenText)
	if len(autogen) == 0 {
		return Pair{}, &MalformedInputError{Side: "autogen", Reason: "no tokens"}
	}
	manual := strings.Fields(manualText)
	if len(manual) == 0 {
		return Pair{}, &MalformedInputError{Side: "manual", Reason: "no tokens"}
	}
	return Pair{Autogen: autogen, Manual: manual}, nil
}

// Align aligns the pair with the given options.
func (p Pair) Align(opts ...Option) ([]Segment, error) {
	return Align(p.Autogen, p.Manual, opts...)
}
