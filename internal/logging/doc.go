// Package logging assembles structured slog loggers and formatting helpers used
// across speakerline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code tags log lines
// with run IDs, stages, and video names. Diagnostics always go to stderr so
// stdout stays free for command output; when a log directory is configured a
// JSON copy of every record is appended there as well.
//
// A no-op logger is provided for tests and library callers that do not care
// about diagnostics.
package logging
