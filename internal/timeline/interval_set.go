package timeline

import "sort"

// Labeled pairs an interval with a label and the position it was added at.
type Labeled struct {
	Interval
	Label string
	Index int
}

// IntervalSet is an ordered collection of labeled intervals. Entries are kept
// sorted by start; entries with equal starts keep insertion order.
type IntervalSet struct {
	items []Labeled
}

// NewIntervalSet builds a set from identity spans, labeling each interval
// with its speaker.
func NewIntervalSet(spans []IdentitySpan) *IntervalSet {
	set := &IntervalSet{items: make([]Labeled, 0, len(spans))}
	for i, span := range spans {
		set.items = append(set.items, Labeled{Interval: span.Interval, Label: span.Speaker, Index: i})
	}
	sort.SliceStable(set.items, func(i, j int) bool {
		return set.items[i].Start < set.items[j].Start
	})
	return set
}

// Len returns the number of intervals in the set.
func (s *IntervalSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Overlapping returns every entry sharing a positive-length region with iv,
// in start order.
func (s *IntervalSet) Overlapping(iv Interval) []Labeled {
	if s == nil {
		return nil
	}
	// Entries starting at or after iv.End cannot overlap.
	limit := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Start >= iv.End
	})
	var out []Labeled
	for _, item := range s.items[:limit] {
		if item.Intersects(iv) {
			out = append(out, item)
		}
	}
	return out
}

// Labels returns the distinct labels in order of first appearance by start.
func (s *IntervalSet) Labels() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s.items))
	var out []string
	for _, item := range s.items {
		if _, ok := seen[item.Label]; ok {
			continue
		}
		seen[item.Label] = struct{}{}
		out = append(out, item.Label)
	}
	return out
}

// Span returns the interval covering every entry, and false when empty.
func (s *IntervalSet) Span() (Interval, bool) {
	if s.Len() == 0 {
		return Interval{}, false
	}
	out := s.items[0].Interval
	for _, item := range s.items[1:] {
		if item.End > out.End {
			out.End = item.End
		}
	}
	return out, true
}
