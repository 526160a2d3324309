// Package alignment attributes transcribed text spans to diarized speakers.
//
// Each text span is matched independently against the cleaned identity
// spans: the span with the greatest temporal overlap wins, and when nothing
// overlaps the closest span by boundary distance is used instead. Ties go to
// the earliest identity span in the order supplied, which keeps results
// reproducible but carries no meaning beyond that. Alignment is a 1:1
// relabeling; it never creates, merges, or drops spans and never fails on
// unmatched data.
package alignment
