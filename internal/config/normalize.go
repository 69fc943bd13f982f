package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"capcorpus/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeAlignment()
	c.normalizeLabeling()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = filepath.Join(c.Paths.DataDir, defaultDatabaseName)
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.APIEndpoint = strings.TrimSpace(c.YouTube.APIEndpoint)
	c.YouTube.ChannelName = strings.Join(strings.Fields(c.YouTube.ChannelName), " ")
	c.YouTube.Language = language.ToISO2(c.YouTube.Language)
	if c.YouTube.Language == "" {
		c.YouTube.Language = defaultLanguage
	}
	if c.YouTube.SaveInterval <= 0 {
		c.YouTube.SaveInterval = defaultSaveInterval
	}
	if c.YouTube.TranscriptSaveInterval <= 0 {
		c.YouTube.TranscriptSaveInterval = c.YouTube.SaveInterval
	}
	if c.YouTube.ResultsPerPage <= 0 {
		c.YouTube.ResultsPerPage = defaultResultsPerPage
	}
	if c.YouTube.MaxSize <= 0 {
		c.YouTube.MaxSize = defaultMaxSize
	}
	c.YouTube.TimedTextBaseURL = strings.TrimSpace(c.YouTube.TimedTextBaseURL)
	if c.YouTube.TimedTextBaseURL == "" {
		c.YouTube.TimedTextBaseURL = defaultTimedTextBaseURL
	}
	if c.YouTube.RequestTimeout <= 0 {
		c.YouTube.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeAlignment() {
	c.Alignment.Backend = strings.ToLower(strings.TrimSpace(c.Alignment.Backend))
	if c.Alignment.Backend == "" {
		c.Alignment.Backend = defaultAlignmentBackend
	}
}

func (c *Config) normalizeLabeling() {
	c.Labeling.Mode = strings.ToLower(strings.TrimSpace(c.Labeling.Mode))
	if c.Labeling.Mode == "" {
		c.Labeling.Mode = defaultLabelingMode
	}
	c.Labeling.Stemmer = strings.ToLower(strings.TrimSpace(c.Labeling.Stemmer))
	if c.Labeling.Stemmer == "" {
		c.Labeling.Stemmer = defaultStemmer
	}
	c.Labeling.Language = language.ToISO2(c.Labeling.Language)
	if c.Labeling.Language == "" {
		c.Labeling.Language = c.YouTube.Language
	}
	if c.Labeling.Workers <= 0 {
		c.Labeling.Workers = defaultWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
