// Package config loads, normalizes, and validates capcorpus configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YOUTUBE_API_KEY. The Config type centralizes every knob the fetch and
// labeling commands need, including the integer label values written into
// corpus files.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical names, and clear validation errors.
package config
