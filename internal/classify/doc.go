// Package classify labels single-token disagreements between an autogen and
// a manual transcript.
//
// Classify first tries to split every BothDiffer block into one manual token
// per slot. Blocks whose manual run has a different token count than the
// block are left unlabeled. Each split slot then goes through an ordered rule
// chain (case, punctuation, case and punctuation, stem, digit, intra-word
// punctuation, unknown) and the first matching rule sets its category. The
// manual token becomes the slot's correction.
//
// In simple mode the chain collapses to a single SimpleDiff category.
package classify
