package config

import (
	"capcorpus/internal/classify"
	"capcorpus/internal/expand"
)

const (
	defaultDataDir                = "~/.local/share/capcorpus/data"
	defaultLogDir                 = "~/.local/share/capcorpus/logs"
	defaultDatabaseName           = "capcorpus.db"
	defaultLogRetentionDays       = 30
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultLanguage               = "en"
	defaultSaveInterval           = 100
	defaultResultsPerPage         = 50
	defaultMaxSize                = 5000
	defaultRequestTimeout         = 30
	defaultTimedTextBaseURL       = "https://www.youtube.com/api/timedtext"
	defaultAlignmentBackend       = "difflib"
	defaultLabelingMode           = "taxonomy"
	defaultStemmer                = "porter"
	defaultWorkers                = 4
	defaultPostprocColumnsOnly    = true
	defaultVideoIDAsIndex         = false
	defaultSkipStopwords          = false
	defaultAutoJunk               = true
	maxResultsPerPage             = 50
	maxMinSimilarity              = 1.0
	defaultTranscriptSaveInterval = defaultSaveInterval
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		YouTube: YouTube{
			Language:               defaultLanguage,
			SaveInterval:           defaultSaveInterval,
			TranscriptSaveInterval: defaultTranscriptSaveInterval,
			ResultsPerPage:         defaultResultsPerPage,
			MaxSize:                defaultMaxSize,
			TimedTextBaseURL:       defaultTimedTextBaseURL,
			RequestTimeout:         defaultRequestTimeout,
		},
		Alignment: Alignment{
			Backend:  defaultAlignmentBackend,
			AutoJunk: defaultAutoJunk,
		},
		Labeling: Labeling{
			Mode:                defaultLabelingMode,
			SkipStopwords:       defaultSkipStopwords,
			Stemmer:             defaultStemmer,
			Workers:             defaultWorkers,
			PostprocColumnsOnly: defaultPostprocColumnsOnly,
			VideoIDAsIndex:      defaultVideoIDAsIndex,
		},
		Labels: Labels{
			Agreement:  expand.DefaultLabels(),
			Categories: classify.DefaultScheme(),
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
