package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"capcorpus/internal/transcript"
)

// SaveTranscript records the fetch outcome for one video and language.
// Caption lines are stored only for fetched transcripts.
func (s *Store) SaveTranscript(ctx context.Context, t Transcript) error {
	if t.VideoID == "" || t.Language == "" {
		return errors.New("save transcript: video id and language are required")
	}
	var autogenJSON, manualJSON sql.NullString
	if t.Status == StatusFetched {
		var err error
		if autogenJSON, err = encodeLines(t.Autogen); err != nil {
			return fmt.Errorf("encode autogen lines: %w", err)
		}
		if manualJSON, err = encodeLines(t.Manual); err != nil {
			return fmt.Errorf("encode manual lines: %w", err)
		}
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO transcripts (video_id, language, status, reason, autogen_json, manual_json, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(video_id, language) DO UPDATE SET
            status = excluded.status,
            reason = excluded.reason,
            autogen_json = excluded.autogen_json,
            manual_json = excluded.manual_json,
            updated_at = excluded.updated_at`,
		t.VideoID, t.Language, string(t.Status), t.Reason, autogenJSON, manualJSON, timestampNow(),
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// Transcript returns the stored outcome for a video, or nil.
func (s *Store) Transcript(ctx context.Context, videoID, lang string) (*Transcript, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT video_id, language, status, reason, autogen_json, manual_json, updated_at
        FROM transcripts WHERE video_id = ? AND language = ?`,
		videoID, lang,
	)
	var (
		t                     Transcript
		status                string
		autogenRaw, manualRaw sql.NullString
		updated               sql.NullString
	)
	err := row.Scan(&t.VideoID, &t.Language, &status, &t.Reason, &autogenRaw, &manualRaw, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	t.Status = TranscriptStatus(status)
	t.UpdatedAt = parseTimestamp(updated)
	if t.Autogen, err = decodeLines(autogenRaw); err != nil {
		return nil, fmt.Errorf("decode autogen lines for %s: %w", videoID, err)
	}
	if t.Manual, err = decodeLines(manualRaw); err != nil {
		return nil, fmt.Errorf("decode manual lines for %s: %w", videoID, err)
	}
	return &t, nil
}

// FetchedTranscripts returns every fetched caption pair for a channel in
// video discovery order.
func (s *Store) FetchedTranscripts(ctx context.Context, channelID, lang string) ([]FetchedTranscript, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT v.id, v.channel_id, v.playlist_id, v.title, t.autogen_json, t.manual_json
        FROM videos v
        JOIN transcripts t ON t.video_id = v.id
        WHERE v.channel_id = ? AND t.language = ? AND t.status = ?
        ORDER BY v.seq`,
		channelID, lang, StatusFetched,
	)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var out []FetchedTranscript
	for rows.Next() {
		var (
			ft                    FetchedTranscript
			autogenRaw, manualRaw sql.NullString
		)
		if err := rows.Scan(&ft.ID, &ft.ChannelID, &ft.PlaylistID, &ft.Title, &autogenRaw, &manualRaw); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		if ft.Autogen, err = decodeLines(autogenRaw); err != nil {
			return nil, fmt.Errorf("decode autogen lines for %s: %w", ft.ID, err)
		}
		if ft.Manual, err = decodeLines(manualRaw); err != nil {
			return nil, fmt.Errorf("decode manual lines for %s: %w", ft.ID, err)
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

// TranscriptCounts tallies transcript outcomes for a channel.
func (s *Store) TranscriptCounts(ctx context.Context, channelID, lang string) (map[TranscriptStatus]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT t.status, COUNT(1)
        FROM transcripts t
        JOIN videos v ON v.id = t.video_id
        WHERE v.channel_id = ? AND t.language = ?
        GROUP BY t.status`,
		channelID, lang,
	)
	if err != nil {
		return nil, fmt.Errorf("count transcripts: %w", err)
	}
	defer rows.Close()

	counts := make(map[TranscriptStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan transcript count: %w", err)
		}
		counts[TranscriptStatus(status)] = n
	}
	return counts, rows.Err()
}

func encodeLines(lines []transcript.Line) (sql.NullString, error) {
	if lines == nil {
		lines = []transcript.Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeLines(raw sql.NullString) ([]transcript.Line, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var lines []transcript.Line
	if err := json.Unmarshal([]byte(raw.String), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
