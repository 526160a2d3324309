package alignment

import (
	"math"
	"strings"

	"speakerline/internal/timeline"
)

// Method records how a speaker was chosen for a text span.
type Method string

const (
	MethodOverlap Method = "overlap"
	MethodNearest Method = "nearest"
	MethodUnknown Method = "unknown"
)

// Match is the decision made for one text span.
type Match struct {
	Speaker string
	Method  Method
	// Index is the position of the chosen identity span, or -1 for unknown.
	Index    int
	Overlap  float64
	Distance float64
}

// Assign picks the speaker for a single text span.
//
// The identity span with the strictly greatest overlap wins; on equal
// overlap the first span in ids is kept. When no span overlaps, the span
// minimising min(|Δstart|, |Δend|) is used with the same first-wins rule.
// An empty ids slice yields timeline.UnknownSpeaker.
func Assign(span timeline.TextSpan, ids []timeline.IdentitySpan) Match {
	return assign(span, timeline.NewIntervalSet(ids), ids)
}

func assign(span timeline.TextSpan, set *timeline.IntervalSet, ids []timeline.IdentitySpan) Match {
	if len(ids) == 0 {
		return Match{Speaker: timeline.UnknownSpeaker, Method: MethodUnknown, Index: -1}
	}

	// The set is ordered by start, so ties resolve on the original index.
	best, bestOverlap := -1, 0.0
	for _, candidate := range set.Overlapping(span.Interval) {
		overlap := span.Overlap(candidate.Interval)
		if overlap > bestOverlap || (overlap == bestOverlap && overlap > 0 && candidate.Index < best) {
			best, bestOverlap = candidate.Index, overlap
		}
	}
	if best >= 0 {
		return Match{Speaker: ids[best].Speaker, Method: MethodOverlap, Index: best, Overlap: bestOverlap}
	}

	nearest, bestDistance := 0, math.Inf(1)
	for i, id := range ids {
		distance := boundaryDistance(span.Interval, id.Interval)
		if distance < bestDistance {
			nearest, bestDistance = i, distance
		}
	}
	return Match{Speaker: ids[nearest].Speaker, Method: MethodNearest, Index: nearest, Distance: bestDistance}
}

func boundaryDistance(a, b timeline.Interval) float64 {
	return math.Min(math.Abs(a.Start-b.Start), math.Abs(a.End-b.End))
}

// Align returns one aligned span per text span in input order. Text is
// trimmed and confidence is passed through unchanged.
func Align(text []timeline.TextSpan, ids []timeline.IdentitySpan) []timeline.AlignedSpan {
	spans, _ := AlignWithMatches(text, ids)
	return spans
}

// AlignWithMatches is Align plus the per-span decisions, indexed like text.
func AlignWithMatches(text []timeline.TextSpan, ids []timeline.IdentitySpan) ([]timeline.AlignedSpan, []Match) {
	spans := make([]timeline.AlignedSpan, len(text))
	matches := make([]Match, len(text))
	set := timeline.NewIntervalSet(ids)
	for i, span := range text {
		match := assign(span, set, ids)
		span.Text = strings.TrimSpace(span.Text)
		spans[i] = timeline.AlignedSpan{TextSpan: span, Speaker: match.Speaker}
		matches[i] = match
	}
	return spans, matches
}
