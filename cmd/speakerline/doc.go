// Package main hosts the speakerline CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline
// runs: merging a transcription with a diarization into a speaker-attributed
// timeline, matching questions to equal time windows, batch processing,
// snapshot validation, exports, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on presentation.
//
// Keep this package lean: new behaviour belongs in the internal packages
// first and is surfaced here through dedicated commands or flags.
package main
