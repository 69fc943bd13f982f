package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

type json3Payload struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    int64       `json:"tStartMs"`
	DurationMs int64       `json:"dDurationMs"`
	Segs       []json3Segs `json:"segs"`
}

type json3Segs struct {
	UTF8 string `json:"utf8"`
}

// ParseJSON3 decodes the json3 timed-text payload served by the caption
// endpoint. Events without text (window and style events) are dropped.
func ParseJSON3(data []byte) ([]Line, error) {
	var payload json3Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode json3: %w", err)
	}
	lines := make([]Line, 0, len(payload.Events))
	for _, ev := range payload.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.Join(strings.Fields(b.String()), " ")
		if text == "" {
			continue
		}
		lines = append(lines, Line{
			Start:    float64(ev.StartMs) / 1000,
			Duration: float64(ev.DurationMs) / 1000,
			Text:     text,
		})
	}
	return lines, nil
}

// ParseLines decodes a JSON array of {start, duration, text} objects.
func ParseLines(data []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode transcript lines: %w", err)
	}
	return lines, nil
}

// ParsePlain treats each non-blank line as a caption, numbered in seconds.
func ParsePlain(data []byte) []Line {
	var lines []Line
	for _, row := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		text := strings.Join(strings.Fields(row), " ")
		if text == "" {
			continue
		}
		lines = append(lines, Line{Start: float64(len(lines)), Duration: 1, Text: text})
	}
	return lines
}
