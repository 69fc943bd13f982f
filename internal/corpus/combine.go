package corpus

import (
	"fmt"
	"path/filepath"
	"sort"

	"capcorpus/internal/fileutil"
)

// CombineSummary describes a Combine call.
type CombineSummary struct {
	Files      []string
	Rows       int
	Duplicates int
}

// Combine concatenates the labeled record files in dir in name order. A
// video id seen in an earlier file wins over later copies.
func Combine(dir string) ([]Record, CombineSummary, error) {
	files, err := fileutil.ListFiles(dir, ".json")
	if err != nil {
		return nil, CombineSummary{}, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)

	summary := CombineSummary{}
	seen := make(map[string]struct{})
	var out []Record
	for _, path := range files {
		records, err := ReadRecords(path)
		if err != nil {
			return nil, CombineSummary{}, err
		}
		summary.Files = append(summary.Files, filepath.Base(path))
		for _, rec := range records {
			if _, dup := seen[rec.VideoID]; dup {
				summary.Duplicates++
				continue
			}
			seen[rec.VideoID] = struct{}{}
			out = append(out, rec)
		}
	}
	summary.Rows = len(out)
	return out, summary, nil
}
