package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SaveChannel inserts or refreshes a channel row.
func (s *Store) SaveChannel(ctx context.Context, ch Channel) error {
	if strings.TrimSpace(ch.ID) == "" {
		return errors.New("save channel: id is required")
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO channels (id, title, query, created_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET title = excluded.title, query = excluded.query`,
		ch.ID, ch.Title, ch.Query, timestampNow(),
	)
	if err != nil {
		return fmt.Errorf("save channel: %w", err)
	}
	return nil
}

// ChannelByQuery returns the channel previously resolved for query, or nil.
func (s *Store) ChannelByQuery(ctx context.Context, query string) (*Channel, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, title, query, created_at FROM channels WHERE query = ? ORDER BY created_at DESC LIMIT 1`,
		query,
	)
	var (
		ch      Channel
		created sql.NullString
	)
	err := row.Scan(&ch.ID, &ch.Title, &ch.Query, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("channel by query: %w", err)
	}
	ch.CreatedAt = parseTimestamp(created)
	return &ch, nil
}

// AddPlaylists stores a page of playlists and advances the checkpoint in one
// transaction. Playlists already stored are ignored. It returns how many rows
// were new.
func (s *Store) AddPlaylists(ctx context.Context, items []Playlist, cp Checkpoint) (int, error) {
	added := 0
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		added = 0
		for _, p := range items {
			res, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO playlists (id, channel_id, title) VALUES (?, ?, ?)`,
				p.ID, p.ChannelID, p.Title,
			)
			if err != nil {
				return fmt.Errorf("insert playlist %s: %w", p.ID, err)
			}
			added += rowsAffected(res)
		}
		return saveCheckpointTx(ctx, tx, cp)
	})
	if err != nil {
		return 0, fmt.Errorf("add playlists: %w", err)
	}
	return added, nil
}

// Playlists lists a channel's playlists in discovery order.
func (s *Store) Playlists(ctx context.Context, channelID string) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, channel_id, title FROM playlists WHERE channel_id = ? ORDER BY seq`,
		channelID,
	)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var out []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.ChannelID, &p.Title); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AddVideos stores a page of playlist items and advances the checkpoint in
// one transaction. A video id seen before keeps its first playlist.
func (s *Store) AddVideos(ctx context.Context, items []Video, cp Checkpoint) (int, error) {
	added := 0
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		added = 0
		for _, v := range items {
			res, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO videos (id, channel_id, playlist_id, title) VALUES (?, ?, ?, ?)`,
				v.ID, v.ChannelID, v.PlaylistID, v.Title,
			)
			if err != nil {
				return fmt.Errorf("insert video %s: %w", v.ID, err)
			}
			added += rowsAffected(res)
		}
		return saveCheckpointTx(ctx, tx, cp)
	})
	if err != nil {
		return 0, fmt.Errorf("add videos: %w", err)
	}
	return added, nil
}

// Videos lists a channel's videos in discovery order.
func (s *Store) Videos(ctx context.Context, channelID string) ([]Video, error) {
	return s.queryVideos(ctx,
		`SELECT id, channel_id, playlist_id, title FROM videos WHERE channel_id = ? ORDER BY seq`,
		channelID,
	)
}

// PendingVideos lists videos with no transcript outcome for lang yet, plus
// those whose previous attempt failed.
func (s *Store) PendingVideos(ctx context.Context, channelID, lang string) ([]Video, error) {
	return s.queryVideos(ctx,
		`SELECT v.id, v.channel_id, v.playlist_id, v.title
        FROM videos v
        LEFT JOIN transcripts t ON t.video_id = v.id AND t.language = ?
        WHERE v.channel_id = ? AND (t.status IS NULL OR t.status = ?)
        ORDER BY v.seq`,
		lang, channelID, StatusFailed,
	)
}

func (s *Store) queryVideos(ctx context.Context, query string, args ...any) ([]Video, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var out []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.ChannelID, &v.PlaylistID, &v.Title); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func rowsAffected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
