package expand

import (
	"fmt"
	"strings"

	"capcorpus/internal/align"
)

// Expand converts segments into slots and checks that the autogen tokens can
// be read back from them.
func Expand(segments []align.Segment) (Slots, error) {
	slots := make(Slots, 0, len(segments))
	for _, seg := range segments {
		switch seg.Kind {
		case align.KindEqual:
			slots = append(slots, Slot{Agreement: BothAgree, CommonToken: seg.Token()})
		case align.KindAutogenOnly:
			for _, tok := range seg.Autogen {
				slots = append(slots, Slot{Agreement: AutogenInsert, AutogenToken: tok})
			}
		case align.KindManualOnly:
			slots = append(slots, Slot{Agreement: ManualInsert, ManualToken: strings.Join(seg.Manual, " ")})
		case align.KindReplace:
			block := strings.Join(seg.Manual, " ")
			extra := len(seg.Autogen) - 1
			for _, tok := range seg.Autogen {
				slots = append(slots, Slot{
					Agreement:    BothDiffer,
					AutogenToken: tok,
					ManualToken:  block,
					ExtraRepeats: extra,
				})
			}
		default:
			return nil, &InvariantError{Side: "segment", Reason: "unknown segment kind " + seg.Kind.String()}
		}
	}
	if err := VerifyAutogen(slots, align.AutogenSide(segments)); err != nil {
		return nil, err
	}
	return slots, nil
}

// AutogenReconstruct reads the autogen view of every slot: the common token
// for BothAgree, the autogen token for AutogenInsert and BothDiffer, and ""
// for ManualInsert. The result has one entry per slot.
func AutogenReconstruct(slots Slots) []string {
	out := make([]string, len(slots))
	for i, slot := range slots {
		switch slot.Agreement {
		case BothAgree:
			out[i] = slot.CommonToken
		case AutogenInsert, BothDiffer:
			out[i] = slot.AutogenToken
		}
	}
	return out
}

// AutogenTokens returns the autogen transcript tokens, dropping the empty
// entries that ManualInsert slots contribute.
func AutogenTokens(slots Slots) []string {
	out := make([]string, 0, len(slots))
	for i, tok := range AutogenReconstruct(slots) {
		if slots[i].Agreement == ManualInsert {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ManualReconstruct reads the manual transcript tokens back out of slots.
// A BothDiffer block contributes its manual run once and the following
// ExtraRepeats slots are skipped.
func ManualReconstruct(slots Slots) []string {
	out := make([]string, 0, len(slots))
	for i := 0; i < len(slots); i++ {
		slot := slots[i]
		switch slot.Agreement {
		case BothAgree:
			out = append(out, slot.CommonToken)
		case ManualInsert:
			out = append(out, strings.Fields(slot.ManualToken)...)
		case BothDiffer:
			out = append(out, strings.Fields(slot.ManualToken)...)
			i += slot.ExtraRepeats
		}
	}
	return out
}

// VerifyAutogen checks that slots reproduce autogen exactly.
func VerifyAutogen(slots Slots, autogen []string) error {
	got := AutogenTokens(slots)
	if len(got) != len(autogen) {
		return &InvariantError{
			Side:   "autogen",
			Reason: fmt.Sprintf("slot sequence holds %d autogen tokens, want %d", len(got), len(autogen)),
		}
	}
	for i := range got {
		if got[i] != autogen[i] {
			return &InvariantError{Side: "autogen", Index: i, Want: autogen[i], Got: got[i]}
		}
	}
	return nil
}

// VerifyManual checks that slots reproduce manual exactly.
func VerifyManual(slots Slots, manual []string) error {
	got := ManualReconstruct(slots)
	if len(got) != len(manual) {
		return &InvariantError{
			Side:   "manual",
			Reason: fmt.Sprintf("slot sequence holds %d manual tokens, want %d", len(got), len(manual)),
		}
	}
	for i := range got {
		if got[i] != manual[i] {
			return &InvariantError{Side: "manual", Index: i, Want: manual[i], Got: got[i]}
		}
	}
	return nil
}
