package transcript

import (
	"errors"
	"fmt"
	"strings"
)

// Line is one timed caption line. Start and Duration are in seconds.
type Line struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// ErrEmptyTranscript is wrapped by TextExtractionError for transcripts
// without lines.
var ErrEmptyTranscript = errors.New("empty transcript")

// TextExtractionError reports a transcript that yields no text.
type TextExtractionError struct {
	Reason string
	Err    error
}

func (e *TextExtractionError) Error() string {
	if e.Err != nil {
		return "extract transcript text: " + e.Err.Error()
	}
	return "extract transcript text: " + e.Reason
}

func (e *TextExtractionError) Unwrap() error { return e.Err }

func (e *TextExtractionError) ErrorKind() string { return "malformed_input" }

// ExtractText joins the text of every line that starts no later than the
// last line, stopping at the first line past that point.
func ExtractText(lines []Line) (string, error) {
	if len(lines) == 0 {
		return "", &TextExtractionError{Err: ErrEmptyTranscript}
	}
	end := lines[len(lines)-1].Start
	parts := make([]string, 0, len(lines))
	for i, line := range lines {
		if line.Start < 0 {
			return "", &TextExtractionError{Reason: fmt.Sprintf("line %d has negative start %.3f", i, line.Start)}
		}
		if line.Start > end {
			break
		}
		parts = append(parts, line.Text)
	}
	text := strings.Join(parts, " ")
	if strings.TrimSpace(text) == "" {
		return "", &TextExtractionError{Reason: "transcript has no text"}
	}
	return text, nil
}
