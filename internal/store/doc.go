// Package store persists harvested channel data in SQLite.
//
// The store caches everything the fetch command learns from YouTube
// (channels, playlists, videos, and raw caption pairs) together with
// page-token checkpoints so an interrupted harvest resumes where it
// stopped. Each CLI invocation also records a run row.
//
// The schema is embedded and versioned through a schema_version table. A
// version mismatch is reported instead of migrated; delete the database to
// rebuild it.
package store
