// Package logs tails the capcorpus log file for the CLI.
//
// It reads with bounded memory, supports negative offsets for "last N lines"
// reads, filters lines by substring (typically a run id), and polls in
// follow mode until the caller's context is done.
package logs
