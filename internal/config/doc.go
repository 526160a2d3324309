// Package config loads, normalizes, and validates speakerline configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SPEAKERLINE_OUTPUT_DIR. The Config type centralizes every knob the
// pipeline and CLI need: diarization cleaning thresholds, speaker-count
// hints, output formats, batch concurrency, and the collaborator labels
// recorded in snapshots.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
