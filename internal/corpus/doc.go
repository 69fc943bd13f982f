// Package corpus turns harvested caption pairs into labeled training records.
//
// A RawRecord carries the two timed transcripts of one video. The Labeler
// extracts their text, aligns the tokens, expands the alignment into slots,
// and classifies every disagreement, producing a Record with the baseline
// sequence, the correction targets, and the per-slot labels. LabelAll runs
// rows on a bounded worker pool and drops rows that cannot be labeled.
//
// Records are stored as JSON, either as an array or as an object keyed by
// video id. Combine merges every labeled file in a directory and Summarize
// reports label histograms.
package corpus
