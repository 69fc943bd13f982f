package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Checkpoint returns the stored progress for scope and key.
func (s *Store) Checkpoint(ctx context.Context, scope, key string) (Checkpoint, bool, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT scope, key, page_token, done, items, updated_at FROM checkpoints WHERE scope = ? AND key = ?`,
		scope, key,
	)
	var (
		cp      Checkpoint
		done    int
		updated sql.NullString
	)
	err := row.Scan(&cp.Scope, &cp.Key, &cp.PageToken, &done, &cp.Items, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{Scope: scope, Key: key}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("read checkpoint: %w", err)
	}
	cp.Done = done != 0
	cp.UpdatedAt = parseTimestamp(updated)
	return cp, true, nil
}

// SaveCheckpoint records progress outside of a page insert.
func (s *Store) SaveCheckpoint(ctx context.Context, cp Checkpoint) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return saveCheckpointTx(ctx, tx, cp)
	})
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// ClearCheckpoints removes every checkpoint in scope so the next harvest
// starts from the first page.
func (s *Store) ClearCheckpoints(ctx context.Context, scope string) error {
	if _, err := s.execWithRetry(ctx, `DELETE FROM checkpoints WHERE scope = ?`, scope); err != nil {
		return fmt.Errorf("clear checkpoints: %w", err)
	}
	return nil
}

func saveCheckpointTx(ctx context.Context, tx *sql.Tx, cp Checkpoint) error {
	if cp.Scope == "" || cp.Key == "" {
		return errors.New("checkpoint scope and key are required")
	}
	done := 0
	if cp.Done {
		done = 1
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO checkpoints (scope, key, page_token, done, items, updated_at) VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(scope, key) DO UPDATE SET
            page_token = excluded.page_token,
            done = excluded.done,
            items = excluded.items,
            updated_at = excluded.updated_at`,
		cp.Scope, cp.Key, cp.PageToken, done, cp.Items, timestampNow(),
	)
	if err != nil {
		return fmt.Errorf("upsert checkpoint: %w", err)
	}
	return nil
}
