// Package pipeline runs speakerline jobs end to end.
//
// A Job names a transcription result, a diarization result, and optionally
// a question list. Run loads the collaborator outputs, cleans the identity
// spans, aligns text to speakers, aggregates per-speaker statistics, and
// (when questions are present) partitions the timeline into question
// windows. Process additionally writes the snapshots and configured exports
// under the output directory. RunBatch fans independent jobs out over a
// bounded errgroup.
//
// Each stage runs with a stage-tagged context so log lines carry the run ID,
// stage, and video name. Alignment that had to fall back to the nearest
// speaker or to UNKNOWN is reported as a warning, never as a failure.
package pipeline
