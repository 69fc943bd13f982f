// Package timedtext fetches caption tracks for a video from the timedtext
// endpoint: the track list (XML) and individual tracks in the json3 format.
// Auto-generated speech recognition tracks are marked with kind "asr".
package timedtext
