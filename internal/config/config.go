package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"capcorpus/internal/classify"
	"capcorpus/internal/expand"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	Database string `toml:"database"`
}

// YouTube contains configuration for the channel harvester.
type YouTube struct {
	APIKey                 string `toml:"api_key"`
	APIEndpoint            string `toml:"api_endpoint"`
	ChannelName            string `toml:"channel_name"`
	Language               string `toml:"language"`
	SaveInterval           int    `toml:"save_interval"`
	TranscriptSaveInterval int    `toml:"transcript_save_interval"`
	ResultsPerPage         int    `toml:"results_per_page"`
	MaxSize                int    `toml:"max_size"`
	TimedTextBaseURL       string `toml:"timedtext_base_url"`
	RequestTimeout         int    `toml:"request_timeout"`
	ChannelIDsOnly         bool   `toml:"channel_ids_only"`
	PlaylistIDsOnly        bool   `toml:"playlist_ids_only"`
	VideoIDsOnly           bool   `toml:"video_ids_only"`
}

// Alignment selects the token alignment algorithm.
type Alignment struct {
	Backend  string `toml:"backend"`
	AutoJunk bool   `toml:"autojunk"`
}

// Labeling contains configuration for difference classification and the
// shape of output records.
type Labeling struct {
	Mode                string  `toml:"mode"`
	SkipStopwords       bool    `toml:"skip_stopwords"`
	Stemmer             string  `toml:"stemmer"`
	Language            string  `toml:"language"`
	Workers             int     `toml:"workers"`
	PostprocColumnsOnly bool    `toml:"postproc_columns_only"`
	VideoIDAsIndex      bool    `toml:"video_id_as_index"`
	MinSimilarity       float64 `toml:"min_similarity"`
}

// Labels holds the integers written for agreement kinds and categories.
type Labels struct {
	Agreement  expand.Labels   `toml:"agreement"`
	Categories classify.Scheme `toml:"categories"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for capcorpus.
//
// Configuration sections by subsystem:
//   - Paths: data, log, and database locations
//   - YouTube: channel harvesting and caption retrieval
//   - Alignment: token alignment backend
//   - Labeling: classifier mode and output record shape
//   - Labels: integer values for agreement and category labels
//   - Logging: log format, level, and retention
type Config struct {
	Paths     Paths     `toml:"paths"`
	YouTube   YouTube   `toml:"youtube"`
	Alignment Alignment `toml:"alignment"`
	Labeling  Labeling  `toml:"labeling"`
	Labels    Labels    `toml:"labels"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/capcorpus/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strictErr *toml.StrictMissingError
			if errors.As(err, &strictErr) {
				return nil, "", false, fmt.Errorf("parse config: %s", strictErr.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("capcorpus.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, filepath.Dir(c.Paths.Database)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
