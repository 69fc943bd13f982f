package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"capcorpus/internal/align"
	"capcorpus/internal/classify"
	"capcorpus/internal/config"
	"capcorpus/internal/expand"
	"capcorpus/internal/logging"
	"capcorpus/internal/nlp"
	"capcorpus/internal/services"
	"capcorpus/internal/textutil"
	"capcorpus/internal/transcript"
)

// Labeler turns raw caption pairs into labeled records. A Labeler is safe
// for concurrent use.
type Labeler struct {
	alignOpts     []align.Option
	classifier    *classify.Classifier
	labels        expand.Labels
	scheme        classify.Scheme
	postprocOnly  bool
	minSimilarity float64
	workers       int
	logger        *slog.Logger
}

// NewLabeler builds a labeler from the alignment, labeling and labels
// sections of cfg.
func NewLabeler(cfg *config.Config, logger *slog.Logger) (*Labeler, error) {
	logger = logging.NewComponentLogger(logger, "labeler")

	backend, err := align.ParseBackend(cfg.Alignment.Backend)
	if err != nil {
		return nil, fmt.Errorf("alignment backend: %w", err)
	}
	mode, err := classify.ParseMode(cfg.Labeling.Mode)
	if err != nil {
		return nil, fmt.Errorf("labeling mode: %w", err)
	}
	stemmer, err := nlp.NewStemmer(cfg.Labeling.Stemmer, cfg.Labeling.Language)
	if err != nil {
		return nil, fmt.Errorf("stemmer: %w", err)
	}

	classifier := &classify.Classifier{
		Mode:          mode,
		SkipStopwords: cfg.Labeling.SkipStopwords,
		Tokenize:      nlp.Words,
		Stemmer:       stemmer,
	}
	if cfg.Labeling.SkipStopwords {
		if stopwords := nlp.StopwordsFor(cfg.Labeling.Language); stopwords != nil {
			classifier.Stopwords = stopwords
		} else {
			logging.WarnWithContext(logger, "no stopword list for language; stopwords are labeled", "stopwords_unavailable",
				logging.String("language", cfg.Labeling.Language),
				logging.String(logging.FieldErrorHint, "set labeling.skip_stopwords = false to silence this warning"),
				logging.String(logging.FieldImpact, "stopword mismatches receive labels"),
			)
		}
	}

	workers := cfg.Labeling.Workers
	if workers <= 0 {
		workers = 1
	}

	logger.Debug("labeler configured",
		logging.String("backend", string(backend)),
		logging.String("mode", string(mode)),
		logging.String("stemmer", stemmer.Name()),
		logging.Bool("skip_stopwords", cfg.Labeling.SkipStopwords),
		logging.Int("workers", workers),
	)

	return &Labeler{
		alignOpts:     []align.Option{align.WithBackend(backend), align.WithAutoJunk(cfg.Alignment.AutoJunk)},
		classifier:    classifier,
		labels:        cfg.Labels.Agreement,
		scheme:        cfg.Labels.Categories,
		postprocOnly:  cfg.Labeling.PostprocColumnsOnly,
		minSimilarity: cfg.Labeling.MinSimilarity,
		workers:       workers,
		logger:        logger,
	}, nil
}

// LabelRow labels one caption pair.
func (l *Labeler) LabelRow(raw RawRecord) (Record, error) {
	autogenText, err := transcript.ExtractText(raw.Autogen)
	if err != nil {
		return Record{}, fmt.Errorf("autogen transcript: %w", err)
	}
	manualText, err := transcript.ExtractText(raw.Manual)
	if err != nil {
		return Record{}, fmt.Errorf("manual transcript: %w", err)
	}

	if l.minSimilarity > 0 {
		if sim := textutil.TextSimilarity(autogenText, manualText); sim < l.minSimilarity {
			return Record{}, services.Wrap(services.ErrValidation, "labeling", "similarity",
				fmt.Sprintf("transcripts too dissimilar (%.3f < %.3f)", sim, l.minSimilarity), nil)
		}
	}

	pair, err := align.NewPair(autogenText, manualText)
	if err != nil {
		return Record{}, err
	}
	segments, err := pair.Align(l.alignOpts...)
	if err != nil {
		return Record{}, err
	}
	slots, err := expand.Expand(segments)
	if err != nil {
		return Record{}, err
	}
	if err := expand.VerifyManual(slots, pair.Manual); err != nil {
		return Record{}, err
	}
	result := l.classifier.Classify(slots)
	if l.logger.Enabled(context.Background(), slog.LevelDebug) {
		l.logger.Debug("row labeled",
			logging.String(logging.FieldVideoID, raw.VideoID),
			logging.Any("segments", kindCounts(align.Counts(segments))),
			logging.Any("categories", categoryCounts(result.Counts())),
		)
	}

	rec := Record{
		VideoID:       raw.VideoID,
		VideoTitle:    raw.VideoTitle,
		PlaylistID:    raw.PlaylistID,
		ChannelID:     raw.ChannelID,
		DefaultSeq:    result.Baseline,
		CorrectionSeq: result.Corrections,
		Labels:        result.Labels(l.scheme),
		AutogenText:   autogenText,
		ManualText:    manualText,
	}
	columns := slots.Columns(l.labels)
	rec.Columns = &columns
	if l.postprocOnly {
		rec = rec.PostprocOnly()
	}
	return rec, nil
}

func kindCounts(counts map[align.Kind]int) map[string]int {
	out := make(map[string]int, len(counts))
	for k, n := range counts {
		out[k.String()] = n
	}
	return out
}

func categoryCounts(counts map[classify.Category]int) map[string]int {
	out := make(map[string]int, len(counts))
	for c, n := range counts {
		out[c.String()] = n
	}
	return out
}

// LabelSummary counts the outcome of LabelAll.
type LabelSummary struct {
	Total   int
	Labeled int
	Dropped int
	// DropKinds tallies dropped rows by error kind.
	DropKinds map[string]int
}

// LabelAll labels rows on a bounded worker pool. Rows that fail are logged
// and dropped; the returned records keep input order. Only cancellation of
// ctx fails the call.
func (l *Labeler) LabelAll(ctx context.Context, rows []RawRecord) ([]Record, LabelSummary, error) {
	results := make([]*Record, len(rows))
	failures := make([]error, len(rows))

	var (
		mu   sync.Mutex
		done int
	)
	sampler := logging.NewProgressSampler(10)
	logger := logging.WithContext(ctx, l.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i := range rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := l.LabelRow(rows[i])
			if err != nil {
				failures[i] = err
			} else {
				results[i] = &rec
			}

			mu.Lock()
			done++
			percent := float64(done) / float64(len(rows)) * 100
			if sampler.ShouldLog(percent, "labeling") {
				logger.Info("labeling progress",
					logging.Int("done", done),
					logging.Int("total", len(rows)),
					logging.Float64("percent", percent),
				)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, LabelSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, LabelSummary{}, err
	}

	summary := LabelSummary{Total: len(rows), DropKinds: make(map[string]int)}
	records := make([]Record, 0, len(rows))
	for i, rec := range results {
		if rec != nil {
			records = append(records, *rec)
			continue
		}
		err := failures[i]
		kind := services.ErrorKind(err)
		summary.Dropped++
		summary.DropKinds[kind]++
		rowLogger := logging.WithContext(services.WithVideoID(ctx, rows[i].VideoID), l.logger)
		if kind == "invariant" {
			logging.ErrorWithContext(rowLogger, "alignment invariant violated; row dropped", "row_invariant_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "report this video id; the pair reproduces an aligner bug"),
			)
			continue
		}
		logging.WarnWithContext(rowLogger, "row dropped", "row_dropped",
			logging.Error(err),
			logging.String("error_kind", kind),
			logging.String(logging.FieldErrorHint, "inspect the raw transcripts for this video"),
			logging.String(logging.FieldImpact, "video excluded from labeled corpus"),
		)
	}
	summary.Labeled = len(records)
	return records, summary, nil
}
