// Package qa splits a speaker-attributed timeline into one answer window per
// interview question.
//
// Windows come from equal-time segmentation: the recording is divided into N
// contiguous windows of equal length, the last one pinned to the recording
// end. Every span that overlaps a window (half-open test, touching does not
// count) contributes its text to that window's answer, so a span crossing a
// boundary appears in both neighbours. The split ignores who is speaking; it
// is a deterministic stand-in for real turn detection.
package qa
