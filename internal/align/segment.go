package align

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Segment.
type Kind uint8

const (
	KindEqual Kind = iota + 1
	KindAutogenOnly
	KindManualOnly
	KindReplace
)

func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "equal"
	case KindAutogenOnly:
		return "autogen_only"
	case KindManualOnly:
		return "manual_only"
	case KindReplace:
		return "replace"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Segment is one element of an alignment. Equal segments hold the same single
// token on both sides.
type Segment struct {
	Kind    Kind
	Autogen []string
	Manual  []string
}

// Equal returns a segment for a token present on both sides.
func Equal(token string) Segment {
	return Segment{Kind: KindEqual, Autogen: []string{token}, Manual: []string{token}}
}

// AutogenOnly returns a segment for tokens missing from the manual side.
func AutogenOnly(tokens ...string) Segment {
	return Segment{Kind: KindAutogenOnly, Autogen: tokens}
}

// ManualOnly returns a segment for tokens missing from the autogen side.
func ManualOnly(tokens ...string) Segment {
	return Segment{Kind: KindManualOnly, Manual: tokens}
}

// Replace returns a segment where both sides disagree.
func Replace(autogen, manual []string) Segment {
	return Segment{Kind: KindReplace, Autogen: autogen, Manual: manual}
}

// Token returns the shared token of an Equal segment, or "" otherwise.
func (s Segment) Token() string {
	if s.Kind != KindEqual || len(s.Autogen) == 0 {
		return ""
	}
	return s.Autogen[0]
}

func (s Segment) String() string {
	switch s.Kind {
	case KindEqual:
		return fmt.Sprintf("=%s", s.Token())
	case KindAutogenOnly:
		return fmt.Sprintf("-[%s]", strings.Join(s.Autogen, " "))
	case KindManualOnly:
		return fmt.Sprintf("+[%s]", strings.Join(s.Manual, " "))
	case KindReplace:
		return fmt.Sprintf("~[%s|%s]", strings.Join(s.Autogen, " "), strings.Join(s.Manual, " "))
	default:
		return s.Kind.String()
	}
}

func (s Segment) validate(index int) error {
	if len(s.Autogen) == 0 && len(s.Manual) == 0 {
		return &AlignmentInvariantError{Index: index, Reason: "segment is empty on both sides"}
	}
	switch s.Kind {
	case KindEqual:
		if len(s.Autogen) != 1 || len(s.Manual) != 1 || s.Autogen[0] != s.Manual[0] {
			return &AlignmentInvariantError{Index: index, Reason: "equal segment must hold one shared token"}
		}
	case KindAutogenOnly:
		if len(s.Manual) != 0 {
			return &AlignmentInvariantError{Index: index, Reason: "autogen-only segment has manual tokens"}
		}
	case KindManualOnly:
		if len(s.Autogen) != 0 {
			return &AlignmentInvariantError{Index: index, Reason: "manual-only segment has autogen tokens"}
		}
	case KindReplace:
		if len(s.Autogen) == 0 || len(s.Manual) == 0 {
			return &AlignmentInvariantError{Index: index, Reason: "replace segment needs both runs"}
		}
	default:
		return &AlignmentInvariantError{Index: index, Reason: "unknown segment kind " + s.Kind.String()}
	}
	return nil
}

// AutogenSide concatenates the autogen tokens of segments in order.
func AutogenSide(segments []Segment) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		out = append(out, seg.Autogen...)
	}
	return out
}

// ManualSide concatenates the manual tokens of segments in order.
func ManualSide(segments []Segment) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		out = append(out, seg.Manual...)
	}
	return out
}

// Counts tallies segments by kind.
func Counts(segments []Segment) map[Kind]int {
	counts := make(map[Kind]int, 4)
	for _, seg := range segments {
		counts[seg.Kind]++
	}
	return counts
}
