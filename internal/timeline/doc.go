// Package timeline defines the time-stamped records shared by every stage of
// the alignment pipeline.
//
// Intervals are half-open in spirit ([start, end)) and measured in seconds
// from the start of the recording. Text spans come from the transcription
// collaborator, identity spans from the diarization collaborator, and aligned
// spans are text spans with a resolved speaker label. Constructors validate
// every field so later stages never see a span whose end precedes its start
// or whose text is blank.
//
// All types are plain values; stages copy them into new slices rather than
// mutating previously produced output.
package timeline
