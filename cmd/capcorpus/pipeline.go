package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"capcorpus/internal/config"
	"capcorpus/internal/corpus"
	"capcorpus/internal/fileutil"
	"capcorpus/internal/harvest"
	"capcorpus/internal/logging"
	"capcorpus/internal/preflight"
	"capcorpus/internal/services/timedtext"
	"capcorpus/internal/services/youtube"
	"capcorpus/internal/textutil"
)

type fetchOptions struct {
	channel   string
	stopAfter string
	refresh   bool
	yes       bool
	in        io.Reader
	out       io.Writer
}

func parseStop(value string, cfg config.YouTube) (harvest.Stop, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return harvest.StopFromConfig(cfg), nil
	case "channel":
		return harvest.StopAfterChannel, nil
	case "playlists":
		return harvest.StopAfterPlaylists, nil
	case "videos":
		return harvest.StopAfterVideos, nil
	case "transcripts", "none":
		return harvest.StopNone, nil
	default:
		return harvest.StopNone, fmt.Errorf("invalid --stop-after %q (want channel, playlists, videos or transcripts)", value)
	}
}

func runFetch(ctx context.Context, s *session, opts fetchOptions) (harvest.Result, error) {
	cfg := s.cfg
	if opts.channel != "" {
		cfg.YouTube.ChannelName = opts.channel
	}
	if err := cfg.RequireYouTube(); err != nil {
		return harvest.Result{}, err
	}
	stop, err := parseStop(opts.stopAfter, cfg.YouTube)
	if err != nil {
		return harvest.Result{}, err
	}
	if err := preflight.Err(preflight.RunAll(ctx, cfg)); err != nil {
		return harvest.Result{}, err
	}

	videos, err := youtube.New(ctx, youtube.Options{
		APIKey:         cfg.YouTube.APIKey,
		Endpoint:       cfg.YouTube.APIEndpoint,
		ResultsPerPage: int64(cfg.YouTube.ResultsPerPage),
		MaxSize:        int64(cfg.YouTube.MaxSize),
	})
	if err != nil {
		return harvest.Result{}, err
	}
	captions := timedtext.New(cfg.YouTube.TimedTextBaseURL, &http.Client{
		Timeout: time.Duration(cfg.YouTube.RequestTimeout) * time.Second,
	})

	var confirm harvest.Confirmer
	if !opts.yes {
		confirm = promptConfirm(opts.in, opts.out)
	}

	h := harvest.New(cfg, s.store, videos, captions, s.logger)
	return h.Run(ctx, harvest.Options{
		ChannelName: cfg.YouTube.ChannelName,
		Stop:        stop,
		Refresh:     opts.refresh,
		Confirm:     confirm,
	})
}

func promptConfirm(in io.Reader, out io.Writer) harvest.Confirmer {
	reader := bufio.NewReader(in)
	return func(_ context.Context, ch youtube.Channel) (bool, error) {
		fmt.Fprintf(out, "Found channel %q (%s)\n%s\nUse this channel? [y/N] ", ch.Title, ch.ID, ch.URL())
		answer, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

func fetchSummary(res harvest.Result) string {
	return fmt.Sprintf("channel %s: %d playlists, %d videos, %d transcripts fetched, %d skipped, %d failed",
		res.Channel.ID, res.Playlists, res.Videos, res.Fetched, res.Skipped, res.Failed)
}

type labelOptions struct {
	input  string
	output string
	force  bool
}

type labelOutcome struct {
	Input   string              `json:"input"`
	Output  string              `json:"output"`
	Cached  bool                `json:"cached"`
	Summary corpus.LabelSummary `json:"summary"`
}

// resolveLabelPaths fills the raw input and labeled output paths. Without an
// explicit input the configured channel's raw stage file is used; without an
// explicit output the labeled file is named after the input stem.
func resolveLabelPaths(cfg *config.Config, opts labelOptions) (string, string, error) {
	input := strings.TrimSpace(opts.input)
	stem := textutil.FileStem(cfg.YouTube.ChannelName)
	if input == "" {
		input = cfg.StagePath(config.StageRawTranscripts, stem)
	} else {
		expanded, err := config.ExpandPath(input)
		if err != nil {
			return "", "", err
		}
		input = expanded
		stem = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	output := strings.TrimSpace(opts.output)
	if output == "" {
		return input, cfg.StagePath(cfg.LabeledStage(), stem), nil
	}
	expanded, err := config.ExpandPath(output)
	if err != nil {
		return "", "", err
	}
	return input, expanded, nil
}

func runLabel(ctx context.Context, s *session, opts labelOptions) (labelOutcome, error) {
	input, output, err := resolveLabelPaths(s.cfg, opts)
	if err != nil {
		return labelOutcome{}, err
	}
	outcome := labelOutcome{Input: input, Output: output}

	if !opts.force {
		exists, err := fileutil.Exists(output)
		if err != nil {
			return outcome, fmt.Errorf("check labeled output: %w", err)
		}
		if exists {
			s.logger.Info("labeled output exists; reusing", logging.String("path", output))
			outcome.Cached = true
			return outcome, nil
		}
	}

	rows, err := corpus.ReadRaw(input)
	if err != nil {
		return outcome, err
	}
	labeler, err := corpus.NewLabeler(s.cfg, s.logger)
	if err != nil {
		return outcome, err
	}
	records, summary, err := labeler.LabelAll(ctx, rows)
	if err != nil {
		return outcome, err
	}
	outcome.Summary = summary
	if err := corpus.WriteRecords(output, records, s.cfg.Labeling.VideoIDAsIndex); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func labelSummaryLine(o labelOutcome) string {
	if o.Cached {
		return "labeled output reused: " + o.Output
	}
	return fmt.Sprintf("%d of %d rows labeled (%d dropped) -> %s", o.Summary.Labeled, o.Summary.Total, o.Summary.Dropped, o.Output)
}
