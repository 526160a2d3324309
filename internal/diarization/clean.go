package diarization

import (
	"math"
	"sort"

	"speakerline/internal/services"
	"speakerline/internal/timeline"
)

// Default thresholds in seconds.
const (
	DefaultMinDuration = 0.5
	DefaultMaxMergeGap = 0.5
)

// Options controls span filtering and merging.
type Options struct {
	// MinDuration drops spans strictly shorter than this many seconds.
	MinDuration float64 `json:"min_duration"`
	// MaxMergeGap merges consecutive same-speaker spans whose gap is at most
	// this many seconds. Negative gaps (overlap) always merge.
	MaxMergeGap float64 `json:"max_merge_gap"`
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{MinDuration: DefaultMinDuration, MaxMergeGap: DefaultMaxMergeGap}
}

// Validate rejects negative or non-finite thresholds.
func (o Options) Validate() error {
	if math.IsNaN(o.MinDuration) || math.IsInf(o.MinDuration, 0) || o.MinDuration < 0 {
		return services.InvalidArgument("diarization", "options", "min_duration %v must be a non-negative number", o.MinDuration)
	}
	if math.IsNaN(o.MaxMergeGap) || math.IsInf(o.MaxMergeGap, 0) || o.MaxMergeGap < 0 {
		return services.InvalidArgument("diarization", "options", "max_merge_gap %v must be a non-negative number", o.MaxMergeGap)
	}
	return nil
}

// Clean filters, sorts, and merges raw identity spans. The input slice is not
// modified. Running Clean on its own output with the same options returns the
// same spans.
func Clean(raw []timeline.IdentitySpan, opts Options) []timeline.IdentitySpan {
	kept := make([]timeline.IdentitySpan, 0, len(raw))
	for _, span := range raw {
		if span.Duration() < opts.MinDuration {
			continue
		}
		kept = append(kept, span)
	}
	if len(kept) == 0 {
		return kept
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Start < kept[j].Start
	})

	out := make([]timeline.IdentitySpan, 0, len(kept))
	current := kept[0]
	for _, next := range kept[1:] {
		gap := next.Start - current.End
		if next.Speaker == current.Speaker && gap <= opts.MaxMergeGap {
			current.End = math.Max(current.End, next.End)
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}
