package speakerstats

import (
	"sort"

	"speakerline/internal/timeline"
)

// Stats summarises one speaker's share of an aligned timeline.
type Stats struct {
	Speaker       string  `json:"speaker"`
	TotalDuration float64 `json:"total_duration"`
	WordCount     int     `json:"word_count"`
	SegmentCount  int     `json:"segment_count"`
	Percentage    float64 `json:"percentage"`
}

// Aggregate groups aligned spans by speaker. Every label in known gets an
// entry even without aligned text, as does any label seen only in aligned
// (such as timeline.UnknownSpeaker).
//
// Percentages are relative to the end of the last aligned span and are 0
// when the timeline is empty or ends at 0. Durations are rounded to two
// decimals and percentages to one.
func Aggregate(aligned []timeline.AlignedSpan, known []string) map[string]Stats {
	out := make(map[string]Stats, len(known))
	for _, speaker := range known {
		out[speaker] = Stats{Speaker: speaker}
	}
	for _, span := range aligned {
		entry := out[span.Speaker]
		entry.Speaker = span.Speaker
		entry.TotalDuration += span.Duration()
		entry.WordCount += timeline.WordCount(span.Text)
		entry.SegmentCount++
		out[span.Speaker] = entry
	}

	var overall float64
	if n := len(aligned); n > 0 {
		overall = aligned[n-1].End
	}
	for speaker, entry := range out {
		if overall > 0 {
			entry.Percentage = timeline.Round1(entry.TotalDuration / overall * 100)
		}
		entry.TotalDuration = timeline.Round2(entry.TotalDuration)
		out[speaker] = entry
	}
	return out
}

// Sorted returns the stats ordered by descending duration, then label.
func Sorted(stats map[string]Stats) []Stats {
	out := make([]Stats, 0, len(stats))
	for _, entry := range stats {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalDuration != out[j].TotalDuration {
			return out[i].TotalDuration > out[j].TotalDuration
		}
		return out[i].Speaker < out[j].Speaker
	})
	return out
}

// KnownSpeakers returns the distinct identity labels in first-seen order.
func KnownSpeakers(ids []timeline.IdentitySpan) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, ok := seen[id.Speaker]; ok {
			continue
		}
		seen[id.Speaker] = struct{}{}
		out = append(out, id.Speaker)
	}
	return out
}

// TotalPercentage sums the percentages, mainly for sanity checks.
func TotalPercentage(stats map[string]Stats) float64 {
	var total float64
	for _, entry := range stats {
		total += entry.Percentage
	}
	return total
}
