// Package language normalizes the language codes that appear in configuration
// and caption track listings.
//
// All conversions (ISO 639-1, ISO 639-2, BCP 47 tags, display names) live
// here, together with the mapping from a language to the stemmer and
// stopword list the classifier should use for it.
package language
