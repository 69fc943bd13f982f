package testsupport

import (
	"path/filepath"
	"testing"

	"capcorpus/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.Database = filepath.Join(base, "data", "capcorpus.db")
	cfgVal.YouTube.APIKey = "test"
	cfgVal.YouTube.ChannelName = "Test Channel"
	cfgVal.Labeling.Language = cfgVal.YouTube.Language
	cfgVal.Labeling.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the YouTube Data API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.APIKey = key
	}
}

// WithChannel overrides the channel search query.
func WithChannel(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.ChannelName = name
	}
}

// WithSaveInterval sets both harvest save intervals.
func WithSaveInterval(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.SaveInterval = n
		b.cfg.YouTube.TranscriptSaveInterval = n
	}
}

// WithLabeling applies mutate to the labeling section.
func WithLabeling(mutate func(*config.Labeling)) ConfigOption {
	return func(b *configBuilder) {
		mutate(&b.cfg.Labeling)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
