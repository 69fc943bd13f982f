package store

import (
	"time"

	"capcorpus/internal/transcript"
)

// Channel is a YouTube channel resolved from a search query.
type Channel struct {
	ID        string
	Title     string
	Query     string
	CreatedAt time.Time
}

// Playlist belongs to a channel.
type Playlist struct {
	ID        string
	ChannelID string
	Title     string
}

// Video is a playlist entry. A video id is stored once, under the first
// playlist it was seen in.
type Video struct {
	ID         string
	ChannelID  string
	PlaylistID string
	Title      string
}

// TranscriptStatus records the outcome of fetching a caption pair.
type TranscriptStatus string

const (
	StatusFetched TranscriptStatus = "fetched"
	StatusSkipped TranscriptStatus = "skipped"
	StatusFailed  TranscriptStatus = "failed"
)

// Transcript is the fetch outcome for one video and language.
type Transcript struct {
	VideoID   string
	Language  string
	Status    TranscriptStatus
	Reason    string
	Autogen   []transcript.Line
	Manual    []transcript.Line
	UpdatedAt time.Time
}

// FetchedTranscript joins a fetched caption pair with its video metadata.
type FetchedTranscript struct {
	Video
	Autogen []transcript.Line
	Manual  []transcript.Line
}

// Checkpoint tracks pagination progress for a scope such as a channel's
// playlist listing or a playlist's item listing.
type Checkpoint struct {
	Scope     string
	Key       string
	PageToken string
	Done      bool
	Items     int
	UpdatedAt time.Time
}

// Checkpoint scopes.
const (
	ScopePlaylists = "playlists"
	ScopeVideos    = "videos"
)

// Run records one CLI invocation.
type Run struct {
	ID         string
	Command    string
	Channel    string
	Status     string
	Summary    string
	StartedAt  time.Time
	FinishedAt time.Time
}
