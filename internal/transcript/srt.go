package transcript

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSRT parses SubRip content into lines. Malformed cue blocks are
// skipped; numbering is not checked.
func ParseSRT(data []byte) ([]Line, error) {
	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	content = strings.TrimPrefix(content, "\ufeff")
	if content == "" {
		return nil, nil
	}

	var lines []Line
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		rows := strings.Split(block, "\n")
		// Index line is optional in the wild.
		if !strings.Contains(rows[0], "-->") {
			rows = rows[1:]
		}
		if len(rows) < 2 || !strings.Contains(rows[0], "-->") {
			continue
		}
		parts := strings.SplitN(rows[0], "-->", 2)
		start, err := parseSRTTimestamp(parts[0])
		if err != nil {
			continue
		}
		endFields := strings.Fields(parts[1])
		if len(endFields) == 0 {
			continue
		}
		end, err := parseSRTTimestamp(endFields[0])
		if err != nil {
			continue
		}
		text := strings.Join(strings.Fields(strings.Join(rows[1:], " ")), " ")
		if text == "" {
			continue
		}
		lines = append(lines, Line{Start: start, Duration: max(end-start, 0), Text: text})
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no srt cues found")
	}
	return lines, nil
}

func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
