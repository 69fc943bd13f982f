// Package harvest walks a YouTube channel and collects caption pairs.
//
// A harvest resolves the channel from a search query, lists its playlists,
// lists every playlist's videos, and downloads the auto-generated and the
// manual caption track of each video. Every page is committed to the store
// together with its page token, so an interrupted run resumes from the last
// committed page. Stage snapshots are exported as JSON under the data
// directory every save interval and when a stage completes.
//
// The walk can stop early after the channel, playlist, or video stage.
package harvest
