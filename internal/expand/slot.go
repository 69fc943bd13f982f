package expand

import "fmt"

// Agreement says how the two transcripts relate at a slot.
type Agreement uint8

const (
	BothAgree Agreement = iota
	AutogenInsert
	ManualInsert
	BothDiffer
)

func (a Agreement) String() string {
	switch a {
	case BothAgree:
		return "both_agree"
	case AutogenInsert:
		return "autogen_insert"
	case ManualInsert:
		return "manual_insert"
	case BothDiffer:
		return "both_differ"
	default:
		return fmt.Sprintf("agreement(%d)", uint8(a))
	}
}

// Labels holds the integers written to output records for each agreement.
type Labels struct {
	BothAgree     int `toml:"both_agree"`
	AutogenInsert int `toml:"autogen_insert"`
	BothDiffer    int `toml:"both_differ"`
	ManualInsert  int `toml:"manual_insert"`
}

// DefaultLabels returns the label integers used by existing corpora.
func DefaultLabels() Labels {
	return Labels{BothAgree: 0, AutogenInsert: 1, BothDiffer: 2, ManualInsert: -1}
}

// Value returns the integer for a.
func (l Labels) Value(a Agreement) int {
	switch a {
	case AutogenInsert:
		return l.AutogenInsert
	case ManualInsert:
		return l.ManualInsert
	case BothDiffer:
		return l.BothDiffer
	default:
		return l.BothAgree
	}
}

// Agreement maps an integer back to its agreement.
func (l Labels) Agreement(v int) (Agreement, error) {
	switch v {
	case l.BothAgree:
		return BothAgree, nil
	case l.AutogenInsert:
		return AutogenInsert, nil
	case l.ManualInsert:
		return ManualInsert, nil
	case l.BothDiffer:
		return BothDiffer, nil
	default:
		return 0, fmt.Errorf("unknown agreement label %d", v)
	}
}

// Validate reports duplicate label values.
func (l Labels) Validate() error {
	seen := map[int]string{}
	for _, item := range []struct {
		name  string
		value int
	}{
		{"both_agree", l.BothAgree},
		{"autogen_insert", l.AutogenInsert},
		{"both_differ", l.BothDiffer},
		{"manual_insert", l.ManualInsert},
	} {
		if prev, ok := seen[item.value]; ok {
			return fmt.Errorf("agreement labels %s and %s share value %d", prev, item.name, item.value)
		}
		seen[item.value] = item.name
	}
	return nil
}

// Slot is one position of the expanded comparison.
type Slot struct {
	Agreement    Agreement
	CommonToken  string
	AutogenToken string
	ManualToken  string
	ExtraRepeats int
}

// Slots is an ordered slot sequence; the index is the alignment position.
type Slots []Slot

// Clone returns a copy that can be modified independently.
func (s Slots) Clone() Slots {
	if s == nil {
		return nil
	}
	out := make(Slots, len(s))
	copy(out, s)
	return out
}

// Count returns how many slots have agreement a.
func (s Slots) Count(a Agreement) int {
	n := 0
	for _, slot := range s {
		if slot.Agreement == a {
			n++
		}
	}
	return n
}
