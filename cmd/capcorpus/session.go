package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"capcorpus/internal/config"
	"capcorpus/internal/logging"
	"capcorpus/internal/services"
	"capcorpus/internal/store"
)

const lockFileName = "capcorpus.lock"

// session is the shared state of a command that writes to the data
// directory.
type session struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
	runID  string
}

// withSession holds the data directory lock, opens the store, and records
// the command in the run history while fn executes. fn returns a one-line
// summary stored with the run.
func (c *commandContext) withSession(ctx context.Context, command string, fn func(context.Context, *session) (string, error)) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire data lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another capcorpus run holds %s", lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release data lock", logging.Error(err))
		}
	}()

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithChannel(ctx, cfg.YouTube.ChannelName)
	runLogger := logging.WithContext(ctx, logging.NewComponentLogger(logger, command))

	if err := st.BeginRun(ctx, store.Run{ID: runID, Command: command, Channel: cfg.YouTube.ChannelName}); err != nil {
		return err
	}
	runLogger.Info("run started", logging.String("database", st.Path()))
	started := time.Now()

	summary, runErr := fn(ctx, &session{cfg: cfg, store: st, logger: runLogger, runID: runID})

	status := store.RunSucceeded
	if runErr != nil {
		status = store.RunFailed
		summary = runErr.Error()
	}
	if err := st.FinishRun(context.WithoutCancel(ctx), runID, status, summary); err != nil {
		runLogger.Warn("failed to record run outcome", logging.Error(err))
	}
	if runErr != nil {
		logging.ErrorWithContext(runLogger, "run failed", "run_failed",
			logging.Error(runErr),
			logging.String("error_kind", services.ErrorKind(runErr)),
			logging.String(logging.FieldImpact, "rerun the command to resume"),
		)
		return runErr
	}
	runLogger.Info("run finished",
		logging.String("summary", summary),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return nil
}
