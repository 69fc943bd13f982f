package preflight

import (
	"context"
	"fmt"
	"strings"

	"capcorpus/internal/config"
	"capcorpus/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies to cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckAPIKey(cfg.YouTube.APIKey),
		CheckChannel(cfg.YouTube.ChannelName),
	}

	// Caption endpoint
	results = append(results, CheckEndpoint(ctx, "Caption endpoint", cfg.YouTube.TimedTextBaseURL))

	return results
}

// Err joins the failed results into one configuration error, or returns
// nil when every check passed.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "checks", strings.Join(failed, "; "), nil)
}
