package config

import (
	"path/filepath"

	"capcorpus/internal/language"
)

// Stage names a per-channel output directory under the data dir.
type Stage string

const (
	StageChannels       Stage = "channels"
	StagePlaylists      Stage = "playlists"
	StageVideos         Stage = "videos"
	StageRawTranscripts Stage = "raw_transcripts"
	StageLabeled        Stage = "labeled_transcripts"
	StagePostproc       Stage = "postproc_transcripts"
)

// StageDir returns the directory holding stage output. Transcript stages
// live under transcripts/<language>.
func (c *Config) StageDir(stage Stage) string {
	switch stage {
	case StageChannels, StagePlaylists, StageVideos:
		return filepath.Join(c.Paths.DataDir, string(stage))
	default:
		return filepath.Join(c.Paths.DataDir, "transcripts", c.languageDir(), string(stage))
	}
}

// StagePath returns the JSON file for a stage and file stem.
func (c *Config) StagePath(stage Stage, stem string) string {
	return filepath.Join(c.StageDir(stage), stem+".json")
}

// CombinedDir is where merged labeled corpora are written.
func (c *Config) CombinedDir() string {
	return filepath.Join(c.StageDir(c.LabeledStage()), "combined")
}

func (c *Config) languageDir() string {
	if code := language.ToISO2(c.YouTube.Language); code != "" {
		return code
	}
	return "und"
}

// LabeledStage is where the label command writes: the postproc directory
// when only postproc columns are kept, the labeled directory otherwise.
func (c *Config) LabeledStage() Stage {
	if c.Labeling.PostprocColumnsOnly {
		return StagePostproc
	}
	return StageLabeled
}
