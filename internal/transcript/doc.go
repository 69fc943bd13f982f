// Package transcript reads caption transcripts and reduces them to plain
// text for alignment.
//
// A transcript is an ordered list of timed lines. ExtractText joins the lines
// up to the transcript's temporal end; parsers cover SRT files, the json3
// caption payload, line lists stored by the fetch cache, and plain text.
package transcript
