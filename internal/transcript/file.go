package transcript

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile loads a transcript, choosing the parser from the file extension.
// JSON files may hold either a json3 payload or a line array.
func ReadFile(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return ParseSRT(data)
	case ".json", ".json3":
		trimmed := bytes.TrimSpace(data)
		if bytes.HasPrefix(trimmed, []byte("[")) {
			return ParseLines(trimmed)
		}
		return ParseJSON3(trimmed)
	default:
		return ParsePlain(data), nil
	}
}
