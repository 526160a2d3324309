package timeline

import (
	"math"

	"speakerline/internal/services"
)

// Interval is a closed-open time range in seconds.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewInterval validates and returns an interval. It rejects negative starts,
// ends before starts, and non-finite values.
func NewInterval(start, end float64) (Interval, error) {
	if !finite(start) || !finite(end) {
		return Interval{}, services.InvalidArgument("timeline", "interval", "non-finite bounds [%v, %v]", start, end)
	}
	if start < 0 {
		return Interval{}, services.InvalidArgument("timeline", "interval", "start %.3f is negative", start)
	}
	if end < start {
		return Interval{}, services.InvalidArgument("timeline", "interval", "end %.3f < start %.3f", end, start)
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns End - Start.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Overlap returns the length of the intersection between iv and other, or 0
// when they are disjoint or only touch.
func (iv Interval) Overlap(other Interval) float64 {
	return math.Max(0, math.Min(iv.End, other.End)-math.Max(iv.Start, other.Start))
}

// Intersects reports whether the two intervals share a positive-length
// region: iv.Start < other.End && iv.End > other.Start.
func (iv Interval) Intersects(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
