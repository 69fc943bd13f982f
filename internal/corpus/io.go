package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"capcorpus/internal/fileutil"
)

// ErrUnknownLayout is returned for files that hold neither a JSON array nor
// an object of records.
var ErrUnknownLayout = errors.New("records file is neither a JSON array nor an object")

// WriteJSON atomically writes v as indented JSON.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteRecords stores records as a JSON array, or as an object keyed by
// video id when byVideoID is set. In the keyed layout a repeated id keeps
// its first record.
func WriteRecords[T Keyed](path string, records []T, byVideoID bool) error {
	if !byVideoID {
		if records == nil {
			records = []T{}
		}
		return WriteJSON(path, records)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if len(seen) > 1 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("marshal key %q: %w", key, err)
		}
		encoded, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %q: %w", key, err)
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encoded)
	}
	buf.WriteByte('}')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("indent %s: %w", path, err)
	}
	pretty.WriteByte('\n')
	if err := fileutil.WriteFileAtomic(path, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadRaw loads harvested caption pairs from either layout.
func ReadRaw(path string) ([]RawRecord, error) {
	var out []RawRecord
	err := readRecords(path, func(key string, raw json.RawMessage) error {
		var rec RawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if rec.VideoID == "" {
			rec.VideoID = key
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// ReadRecords loads labeled records from either layout.
func ReadRecords(path string) ([]Record, error) {
	var out []Record
	err := readRecords(path, func(key string, raw json.RawMessage) error {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if rec.VideoID == "" {
			rec.VideoID = key
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// readRecords streams the elements of an array, or the members of an object
// in file order, to fn. Array elements get an empty key.
func readRecords(path string, fn func(key string, raw json.RawMessage) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open records: %w", err)
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, ErrUnknownLayout)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return fmt.Errorf("%s: %w", path, ErrUnknownLayout)
	}

	for index := 0; dec.More(); index++ {
		key := ""
		if delim == '{' {
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			key, _ = keyTok.(string)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode %s record %d: %w", path, index, err)
		}
		if err := fn(key, raw); err != nil {
			return fmt.Errorf("decode %s record %d: %w", path, index, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
