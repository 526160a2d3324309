// Package pyannote reads speaker diarization output into identity spans.
//
// RTTM is the native pyannote export. JSON and YAML files holding a list of
// {speaker, start, end} records, bare or under a "segments" key, are
// accepted too.
package pyannote
