package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Run statuses.
const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// BeginRun records the start of a CLI invocation.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	status := run.Status
	if status == "" {
		status = RunRunning
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, command, channel, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.Channel, status, timestampNow(),
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// FinishRun stamps the outcome of a run.
func (s *Store) FinishRun(ctx context.Context, id, status, summary string) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET status = ?, summary = ?, finished_at = ? WHERE id = ?`,
		status, summary, timestampNow(), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("finish run: unknown run %s", id)
	}
	return nil
}

// RecentRuns lists the newest runs first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, command, channel, status, summary, started_at, finished_at
        FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run               Run
			started, finished sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Command, &run.Channel, &run.Status, &run.Summary, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTimestamp(started)
		run.FinishedAt = parseTimestamp(finished)
		out = append(out, run)
	}
	return out, rows.Err()
}
