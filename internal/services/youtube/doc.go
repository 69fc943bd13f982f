// Package youtube wraps the YouTube Data API v3 calls the harvester needs:
// channel lookup by name, the playlists of a channel, and the videos of a
// playlist. Listing calls are paged; the caller drives pagination so that
// page tokens can be checkpointed between requests.
package youtube
