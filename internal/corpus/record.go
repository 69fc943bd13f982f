package corpus

import (
	"capcorpus/internal/expand"
	"capcorpus/internal/transcript"
)

// Keyed is implemented by records stored under a video id.
type Keyed interface {
	Key() string
}

// RawRecord is one harvested caption pair.
type RawRecord struct {
	VideoID    string            `json:"video_id"`
	VideoTitle string            `json:"video_title"`
	PlaylistID string            `json:"playlist_id"`
	ChannelID  string            `json:"channel_id"`
	Autogen    []transcript.Line `json:"autogen_transcript"`
	Manual     []transcript.Line `json:"manual_transcript"`
}

// Key returns the video id.
func (r RawRecord) Key() string { return r.VideoID }

// Record is one labeled transcript pair. DefaultSeq, CorrectionSeq and
// Labels have one entry per slot. The slot columns and the extracted texts
// are present only when all columns are kept.
type Record struct {
	VideoID       string   `json:"video_id"`
	VideoTitle    string   `json:"video_title"`
	PlaylistID    string   `json:"playlist_id"`
	ChannelID     string   `json:"channel_id"`
	DefaultSeq    []string `json:"default_seq"`
	CorrectionSeq []string `json:"correction_seq"`
	Labels        []int    `json:"is_single_simple_diff"`
	AutogenText   string   `json:"autogen_text,omitempty"`
	ManualText    string   `json:"manual_text,omitempty"`
	*expand.Columns
}

// Key returns the video id.
func (r Record) Key() string { return r.VideoID }

// Len returns the slot count.
func (r Record) Len() int { return len(r.DefaultSeq) }

// PostprocOnly drops the slot columns and texts.
func (r Record) PostprocOnly() Record {
	r.Columns = nil
	r.AutogenText = ""
	r.ManualText = ""
	return r
}
