// Package align computes a token-level alignment between an auto-generated
// transcript and its manually corrected counterpart.
//
// Align returns an ordered list of segments. Equal segments carry a single
// token shared by both sides; mismatch segments carry the run of tokens found
// only on one side, or both runs when they sit between the same two points
// of agreement (Replace). Reading the autogen side of every segment in order
// reproduces the autogen input exactly, and likewise for the manual side.
//
// Two backends are available. The default "difflib" backend uses the
// longest-contiguous-match heuristic of a SequenceMatcher, which prefers
// alignments with long unbroken equal runs. The "myers" backend computes a
// minimal edit script instead.
package align
