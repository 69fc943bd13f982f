package corpus

import (
	"fmt"

	"capcorpus/internal/classify"
	"capcorpus/internal/expand"
)

// Summary is a histogram over labeled records.
type Summary struct {
	Rows        int
	Slots       int
	Corrections int
	Categories  map[classify.Category]int
	// Agreement is filled only for records that kept their slot columns.
	Agreement map[expand.Agreement]int
}

// Summarize counts categories and agreement kinds. Label integers are read
// back through scheme and labels, so they must match the ones used to write
// the records.
func Summarize(records []Record, mode classify.Mode, scheme classify.Scheme, labels expand.Labels) (Summary, error) {
	summary := Summary{
		Categories: make(map[classify.Category]int),
		Agreement:  make(map[expand.Agreement]int),
	}
	for _, rec := range records {
		summary.Rows++
		summary.Slots += rec.Len()
		for _, c := range rec.CorrectionSeq {
			if c != "" {
				summary.Corrections++
			}
		}
		for i, v := range rec.Labels {
			category, err := scheme.Category(mode, v)
			if err != nil {
				return Summary{}, fmt.Errorf("video %s slot %d: %w", rec.VideoID, i, err)
			}
			summary.Categories[category]++
		}
		if rec.Columns == nil {
			continue
		}
		for i, v := range rec.IsAutogenUnique {
			agreement, err := labels.Agreement(v)
			if err != nil {
				return Summary{}, fmt.Errorf("video %s slot %d: %w", rec.VideoID, i, err)
			}
			summary.Agreement[agreement]++
		}
	}
	return summary, nil
}
