// Package expand turns an alignment into a positional slot sequence.
//
// Every autogen token occupies exactly one slot. Equal tokens become
// BothAgree slots, autogen-only tokens become AutogenInsert slots, a
// manual-only run becomes a single ManualInsert slot, and a Replace block
// becomes one BothDiffer slot per autogen token. The slots of a Replace block
// all carry the whole manual run joined by spaces together with ExtraRepeats,
// the number of further slots sharing that run. The classifier later decides
// whether the run can be split one token per slot.
package expand
