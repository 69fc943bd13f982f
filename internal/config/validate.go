package config

import (
	"errors"
	"fmt"

	"capcorpus/internal/align"
	"capcorpus/internal/classify"
	"capcorpus/internal/nlp"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateLabeling(); err != nil {
		return err
	}
	if err := c.validateLabels(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateYouTube() error {
	if c.YouTube.ResultsPerPage < 1 || c.YouTube.ResultsPerPage > maxResultsPerPage {
		return fmt.Errorf("youtube.results_per_page must be between 1 and %d", maxResultsPerPage)
	}
	if c.YouTube.MaxSize < c.YouTube.ResultsPerPage {
		return errors.New("youtube.max_size must be at least youtube.results_per_page")
	}
	return nil
}

// RequireYouTube reports missing settings needed to talk to the Data API.
func (c *Config) RequireYouTube() error {
	if c.YouTube.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/capcorpus/config.toml"
		}
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'capcorpus config init')", defaultPath)
	}
	if c.YouTube.ChannelName == "" {
		return errors.New("youtube.channel_name is required (or pass --channel)")
	}
	return nil
}

func (c *Config) validateAlignment() error {
	if _, err := align.ParseBackend(c.Alignment.Backend); err != nil {
		return fmt.Errorf("alignment.backend: %w", err)
	}
	return nil
}

func (c *Config) validateLabeling() error {
	if _, err := classify.ParseMode(c.Labeling.Mode); err != nil {
		return fmt.Errorf("labeling.mode: %w", err)
	}
	if _, err := nlp.NewStemmer(c.Labeling.Stemmer, c.Labeling.Language); err != nil {
		return fmt.Errorf("labeling.stemmer: %w", err)
	}
	if c.Labeling.MinSimilarity < 0 || c.Labeling.MinSimilarity > maxMinSimilarity {
		return errors.New("labeling.min_similarity must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLabels() error {
	if err := c.Labels.Agreement.Validate(); err != nil {
		return fmt.Errorf("labels.agreement: %w", err)
	}
	if err := c.Labels.Categories.Validate(); err != nil {
		return fmt.Errorf("labels.categories: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
