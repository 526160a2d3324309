// Package snapshot defines the serialized outputs of a run and handles their
// storage.
//
// Two snapshots exist: the merged transcript (metadata, per-speaker stats,
// attributed timeline, full text) and the question/answer snapshot derived
// from it. Both are plain JSON with every contract key always present and
// every float already rounded, so decoding a snapshot and encoding it again
// yields the same document. Writes are serialized with a file lock kept
// outside the output directory and land atomically through a temp file; names ending in .gz are gzip-compressed.
// Reads validate the document against a JSON Schema generated from the Go
// types before decoding.
package snapshot
