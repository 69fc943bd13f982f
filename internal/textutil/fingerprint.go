package textutil

import "math"

// Fingerprint represents a term-frequency vector over folded word runs of a
// whole transcript.
type Fingerprint struct {
	terms map[string]float64
	norm  float64
}

// NewFingerprint builds a fingerprint from the provided text.
// Returns nil if the text produces no word runs.
func NewFingerprint(text string) *Fingerprint {
	runs := WordRuns(text)
	if len(runs) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(runs))
	for _, run := range runs {
		counts[Fold(run)]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{terms: counts, norm: math.Sqrt(norm)}
}

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for term, count := range a.terms {
		if other, ok := b.terms[term]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// TextSimilarity fingerprints both texts and returns their cosine similarity.
func TextSimilarity(a, b string) float64 {
	return CosineSimilarity(NewFingerprint(a), NewFingerprint(b))
}
