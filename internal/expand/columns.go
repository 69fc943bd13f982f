package expand

import "fmt"

// Columns is the column-oriented form of a slot sequence as stored in
// labeled corpus files. All six sequences have one entry per slot.
type Columns struct {
	CommonToBoth    []string `json:"common_to_both_seq"`
	IsAutogenUnique []int    `json:"is_autogen_unique"`
	IsManualUnique  []int    `json:"is_manual_unique"`
	AutogenSeq      []string `json:"autogen_seq"`
	ManualSeq       []string `json:"manual_seq"`
	ManualAddlRep   []int    `json:"manual_addl_rep"`
}

// Columns splits the slots into parallel sequences using labels for the
// agreement integers.
func (s Slots) Columns(labels Labels) Columns {
	cols := Columns{
		CommonToBoth:    make([]string, len(s)),
		IsAutogenUnique: make([]int, len(s)),
		IsManualUnique:  make([]int, len(s)),
		AutogenSeq:      make([]string, len(s)),
		ManualSeq:       make([]string, len(s)),
		ManualAddlRep:   make([]int, len(s)),
	}
	for i, slot := range s {
		label := labels.Value(slot.Agreement)
		cols.CommonToBoth[i] = slot.CommonToken
		cols.IsAutogenUnique[i] = label
		cols.IsManualUnique[i] = label
		cols.AutogenSeq[i] = slot.AutogenToken
		cols.ManualSeq[i] = slot.ManualToken
		cols.ManualAddlRep[i] = slot.ExtraRepeats
	}
	return cols
}

// Len returns the slot count, or -1 when the sequences disagree in length.
func (c Columns) Len() int {
	n := len(c.CommonToBoth)
	for _, l := range []int{len(c.IsAutogenUnique), len(c.IsManualUnique), len(c.AutogenSeq), len(c.ManualSeq), len(c.ManualAddlRep)} {
		if l != n {
			return -1
		}
	}
	return n
}

// Slots rebuilds the slot sequence from stored columns.
func (c Columns) Slots(labels Labels) (Slots, error) {
	n := c.Len()
	if n < 0 {
		return nil, &InvariantError{Side: "columns", Reason: "column lengths differ"}
	}
	out := make(Slots, n)
	for i := range out {
		agreement, err := labels.Agreement(c.IsAutogenUnique[i])
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		if c.ManualAddlRep[i] < 0 {
			return nil, &InvariantError{Side: "columns", Reason: fmt.Sprintf("slot %d has negative repeat count", i)}
		}
		out[i] = Slot{
			Agreement:    agreement,
			CommonToken:  c.CommonToBoth[i],
			AutogenToken: c.AutogenSeq[i],
			ManualToken:  c.ManualSeq[i],
			ExtraRepeats: c.ManualAddlRep[i],
		}
	}
	return out, nil
}
