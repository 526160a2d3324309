// Package diarization cleans raw speaker-identity spans before alignment.
//
// Diarization models emit spurious micro-segments and fragment one speaker's
// turn into several spans separated by short pauses. Clean drops spans below
// a minimum duration, orders the remainder by start, and merges consecutive
// spans from the same speaker when the gap between them is small. Overlap
// between different speakers is genuine simultaneous speech and is kept.
//
// The package also carries speaker-count hints for the diarization
// collaborator and a per-speaker summary of identity spans used for
// diagnostics.
package diarization
