package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"capcorpus/internal/config"
	"capcorpus/internal/logging"
	"capcorpus/internal/services"
	"capcorpus/internal/services/timedtext"
	"capcorpus/internal/services/youtube"
	"capcorpus/internal/store"
	"capcorpus/internal/textutil"
)

// VideoSource lists channels, playlists, and playlist items.
type VideoSource interface {
	SearchChannels(ctx context.Context, name string) ([]youtube.Channel, error)
	Playlists(ctx context.Context, channelID, pageToken string) (youtube.Page[youtube.Playlist], error)
	PlaylistVideos(ctx context.Context, playlistID, pageToken string) (youtube.Page[youtube.Video], error)
}

// CaptionSource downloads the caption pair of a video.
type CaptionSource interface {
	FetchPair(ctx context.Context, videoID, lang string) (timedtext.Pair, error)
}

// Confirmer asks whether the resolved channel is the intended one.
type Confirmer func(ctx context.Context, channel youtube.Channel) (bool, error)

// ErrDeclined is returned when the Confirmer rejects the channel.
var ErrDeclined = errors.New("channel declined")

// Stop names the last stage a harvest runs.
type Stop int

const (
	StopNone Stop = iota
	StopAfterChannel
	StopAfterPlaylists
	StopAfterVideos
)

func (s Stop) String() string {
	switch s {
	case StopAfterChannel:
		return "channel"
	case StopAfterPlaylists:
		return "playlists"
	case StopAfterVideos:
		return "videos"
	default:
		return "transcripts"
	}
}

// StopFromConfig picks the earliest stop point enabled in cfg.
func StopFromConfig(cfg config.YouTube) Stop {
	switch {
	case cfg.ChannelIDsOnly:
		return StopAfterChannel
	case cfg.PlaylistIDsOnly:
		return StopAfterPlaylists
	case cfg.VideoIDsOnly:
		return StopAfterVideos
	default:
		return StopNone
	}
}

// Options tunes a single harvest.
type Options struct {
	ChannelName string
	Stop        Stop
	// Refresh discards stored page tokens so listings restart from the
	// first page. Already stored rows are kept.
	Refresh bool
	Confirm Confirmer
}

// Result summarizes a harvest.
type Result struct {
	Channel   youtube.Channel
	Stem      string
	Playlists int
	Videos    int
	Fetched   int
	Skipped   int
	Failed    int
	StoppedAt Stop
}

// Harvester coordinates the sources, the store, and the JSON exports.
type Harvester struct {
	cfg      *config.Config
	store    *store.Store
	videos   VideoSource
	captions CaptionSource
	logger   *slog.Logger
}

// New builds a Harvester.
func New(cfg *config.Config, st *store.Store, videos VideoSource, captions CaptionSource, logger *slog.Logger) *Harvester {
	return &Harvester{
		cfg:      cfg,
		store:    st,
		videos:   videos,
		captions: captions,
		logger:   logging.NewComponentLogger(logger, "harvest"),
	}
}

// Run walks the channel named in opts (or the configured channel).
func (h *Harvester) Run(ctx context.Context, opts Options) (Result, error) {
	name := strings.TrimSpace(opts.ChannelName)
	if name == "" {
		name = h.cfg.YouTube.ChannelName
	}
	if name == "" {
		return Result{}, services.Wrap(services.ErrConfiguration, "harvest", "channel", "channel name is required", nil)
	}

	if opts.Refresh {
		for _, scope := range []string{store.ScopePlaylists, store.ScopeVideos} {
			if err := h.store.ClearCheckpoints(ctx, scope); err != nil {
				return Result{}, err
			}
		}
	}

	res := Result{Stem: textutil.FileStem(name), StoppedAt: opts.Stop}
	ctx = services.WithChannel(ctx, name)

	channel, err := h.resolveChannel(ctx, name, opts.Confirm)
	if err != nil {
		return res, err
	}
	res.Channel = channel
	if opts.Stop == StopAfterChannel {
		return res, nil
	}

	if res.Playlists, err = h.harvestPlaylists(ctx, channel, res.Stem); err != nil {
		return res, err
	}
	if opts.Stop == StopAfterPlaylists {
		return res, nil
	}

	if res.Videos, err = h.harvestVideos(ctx, channel, res.Stem); err != nil {
		return res, err
	}
	if opts.Stop == StopAfterVideos {
		return res, nil
	}

	if err := h.harvestTranscripts(ctx, channel, res.Stem, &res); err != nil {
		return res, err
	}
	return res, nil
}

func (h *Harvester) resolveChannel(ctx context.Context, name string, confirm Confirmer) (youtube.Channel, error) {
	logger := logging.WithContext(services.WithStage(ctx, "channel"), h.logger)

	cached, err := h.store.ChannelByQuery(ctx, name)
	if err != nil {
		return youtube.Channel{}, err
	}
	if cached != nil {
		logger.Info("channel resolved from cache",
			logging.String("channel_id", cached.ID),
			logging.String("channel_title", cached.Title),
		)
		return youtube.Channel{ID: cached.ID, Title: cached.Title}, nil
	}

	hits, err := h.videos.SearchChannels(ctx, name)
	if err != nil {
		return youtube.Channel{}, err
	}
	if len(hits) == 0 {
		return youtube.Channel{}, services.Wrap(services.ErrNotFound, "harvest", "channel search", "no channel matches "+name, nil)
	}
	channel := hits[0]
	logger.Info("channel search decision",
		logging.Args(append(logging.DecisionAttrs("channel_selection", channel.ID, "first search hit"),
			logging.String("channel_title", channel.Title),
			logging.Int("hits", len(hits)),
		)...)...,
	)

	if confirm != nil {
		ok, err := confirm(ctx, channel)
		if err != nil {
			return youtube.Channel{}, err
		}
		if !ok {
			return youtube.Channel{}, ErrDeclined
		}
	}

	if err := h.store.SaveChannel(ctx, store.Channel{ID: channel.ID, Title: channel.Title, Query: name}); err != nil {
		return youtube.Channel{}, err
	}
	if err := h.exportChannel(name, channel); err != nil {
		return youtube.Channel{}, err
	}
	return channel, nil
}

func (h *Harvester) harvestPlaylists(ctx context.Context, channel youtube.Channel, stem string) (int, error) {
	logger := logging.WithContext(services.WithStage(ctx, "playlists"), h.logger)

	cp, _, err := h.store.Checkpoint(ctx, store.ScopePlaylists, channel.ID)
	if err != nil {
		return 0, err
	}
	sinceExport := 0
	for !cp.Done {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		page, err := h.videos.Playlists(ctx, channel.ID, cp.PageToken)
		if err != nil {
			return 0, err
		}
		items := make([]store.Playlist, 0, len(page.Items))
		for _, p := range page.Items {
			items = append(items, store.Playlist{ID: p.ID, ChannelID: channel.ID, Title: p.Title})
		}
		cp.Items += len(items)
		cp.PageToken = page.NextPageToken
		cp.Done = page.NextPageToken == ""
		added, err := h.store.AddPlaylists(ctx, items, cp)
		if err != nil {
			return 0, err
		}
		logger.Debug("playlist page stored",
			logging.Int("items", len(items)),
			logging.Int("new", added),
			logging.Int64("total_results", page.TotalResults),
		)
		sinceExport += len(items)
		if sinceExport >= h.cfg.YouTube.SaveInterval && !cp.Done {
			if err := h.exportPlaylists(ctx, channel.ID, stem); err != nil {
				return 0, err
			}
			sinceExport = 0
		}
	}

	if err := h.exportPlaylists(ctx, channel.ID, stem); err != nil {
		return 0, err
	}
	playlists, err := h.store.Playlists(ctx, channel.ID)
	if err != nil {
		return 0, err
	}
	logger.Info("playlists harvested", logging.Int("playlists", len(playlists)))
	return len(playlists), nil
}

func (h *Harvester) harvestVideos(ctx context.Context, channel youtube.Channel, stem string) (int, error) {
	logger := logging.WithContext(services.WithStage(ctx, "videos"), h.logger)

	playlists, err := h.store.Playlists(ctx, channel.ID)
	if err != nil {
		return 0, err
	}
	sinceExport := 0
	for _, playlist := range playlists {
		cp, _, err := h.store.Checkpoint(ctx, store.ScopeVideos, playlist.ID)
		if err != nil {
			return 0, err
		}
		for !cp.Done {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			page, err := h.videos.PlaylistVideos(ctx, playlist.ID, cp.PageToken)
			if errors.Is(err, services.ErrNotFound) {
				logging.WarnWithContext(logger, "playlist unavailable; skipping", "playlist_unavailable",
					logging.String("playlist_id", playlist.ID),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "the playlist may be private or deleted"),
					logging.String(logging.FieldImpact, "videos only listed in this playlist are not harvested"),
				)
				cp.Done = true
				if err := h.store.SaveCheckpoint(ctx, cp); err != nil {
					return 0, err
				}
				break
			}
			if err != nil {
				return 0, err
			}
			items := make([]store.Video, 0, len(page.Items))
			for _, v := range page.Items {
				items = append(items, store.Video{ID: v.ID, ChannelID: channel.ID, PlaylistID: playlist.ID, Title: v.Title})
			}
			cp.Items += len(items)
			cp.PageToken = page.NextPageToken
			cp.Done = page.NextPageToken == ""
			added, err := h.store.AddVideos(ctx, items, cp)
			if err != nil {
				return 0, err
			}
			logger.Debug("video page stored",
				logging.String("playlist_id", playlist.ID),
				logging.Int("items", len(items)),
				logging.Int("new", added),
			)
			sinceExport += added
			if sinceExport >= h.cfg.YouTube.SaveInterval {
				if err := h.exportVideos(ctx, channel.ID, stem); err != nil {
					return 0, err
				}
				sinceExport = 0
			}
		}
	}

	if err := h.exportVideos(ctx, channel.ID, stem); err != nil {
		return 0, err
	}
	videos, err := h.store.Videos(ctx, channel.ID)
	if err != nil {
		return 0, err
	}
	logger.Info("videos harvested",
		logging.Int("videos", len(videos)),
		logging.Int("playlists", len(playlists)),
	)
	return len(videos), nil
}

func (h *Harvester) harvestTranscripts(ctx context.Context, channel youtube.Channel, stem string, res *Result) error {
	stageCtx := services.WithStage(ctx, "transcripts")
	logger := logging.WithContext(stageCtx, h.logger)
	lang := h.cfg.YouTube.Language

	pending, err := h.store.PendingVideos(ctx, channel.ID, lang)
	if err != nil {
		return err
	}
	logger.Info("fetching transcripts", logging.Int("pending", len(pending)), logging.String("language", lang))

	sampler := logging.NewProgressSampler(10)
	sinceExport := 0
	for i, video := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		videoCtx := services.WithVideoID(stageCtx, video.ID)
		outcome, err := h.fetchTranscript(videoCtx, video, lang)
		if err != nil {
			return err
		}
		if err := h.store.SaveTranscript(ctx, outcome); err != nil {
			return err
		}
		switch outcome.Status {
		case store.StatusFetched:
			res.Fetched++
			sinceExport++
		case store.StatusSkipped:
			res.Skipped++
		case store.StatusFailed:
			res.Failed++
		}
		if sinceExport >= h.cfg.YouTube.TranscriptSaveInterval {
			if err := h.exportTranscripts(ctx, channel.ID, stem); err != nil {
				return err
			}
			sinceExport = 0
		}
		percent := float64(i+1) / float64(len(pending)) * 100
		if sampler.ShouldLog(percent, "transcripts") {
			logger.Info("transcript progress",
				logging.Int("done", i+1),
				logging.Int("total", len(pending)),
				logging.Float64("percent", percent),
			)
		}
	}

	if err := h.exportTranscripts(ctx, channel.ID, stem); err != nil {
		return err
	}
	logger.Info("transcripts harvested", logging.Group("transcripts",
		logging.Int("fetched", res.Fetched),
		logging.Int("skipped", res.Skipped),
		logging.Int("failed", res.Failed),
	))
	return nil
}

// fetchTranscript downloads one caption pair and classifies failures.
// Only failures that should stop the whole harvest are returned as errors.
func (h *Harvester) fetchTranscript(ctx context.Context, video store.Video, lang string) (store.Transcript, error) {
	logger := logging.WithContext(ctx, h.logger)
	outcome := store.Transcript{VideoID: video.ID, Language: lang}

	pair, err := h.captions.FetchPair(ctx, video.ID, lang)
	if err == nil {
		outcome.Status = store.StatusFetched
		outcome.Autogen = pair.Autogen
		outcome.Manual = pair.Manual
		return outcome, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcome, ctxErr
	}

	outcome.Reason = err.Error()
	switch services.FailureDisposition(err) {
	case services.DispositionDrop:
		outcome.Status = store.StatusSkipped
		logger.Info("video skipped", logging.String("reason", outcome.Reason))
	case services.DispositionRetry:
		outcome.Status = store.StatusFailed
		logging.WarnWithContext(logger, "transcript fetch failed; will retry on next run", "transcript_fetch_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "rerun fetch to retry failed videos"),
			logging.String(logging.FieldImpact, "video missing from raw transcripts until retried"),
		)
	default:
		return outcome, fmt.Errorf("fetch transcripts for %s: %w", video.ID, err)
	}
	return outcome, nil
}
