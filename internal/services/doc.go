// Package services defines shared utilities consumed by the pipeline stages
// and the collaborator adapters.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and video names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (invalid argument vs missing input vs collaborator failure)
//     with errors.Is.
//   - ExitCode, which maps those markers onto stable CLI exit statuses.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
