// Package textutil provides the token-level text helpers shared by the
// classifier, the corpus pipeline, and the CLI.
//
// The primary use cases are:
//   - Unicode case folding for caseless token comparison
//   - Trimming punctuation from token edges
//   - Extracting maximal alphanumeric runs from a token
//   - Fingerprinting whole transcripts for a cheap similarity check
//   - Sanitizing channel names into file names
//
// Every helper is a pure function and safe for concurrent use.
package textutil
