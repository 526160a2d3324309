package diarization

import (
	"strconv"

	"speakerline/internal/timeline"
)

// SpeakerSummary describes one speaker's identity spans.
type SpeakerSummary struct {
	Speaker            string  `json:"speaker"`
	TotalDuration      float64 `json:"total_duration"`
	NumSegments        int     `json:"num_segments"`
	AvgSegmentDuration float64 `json:"avg_segment_duration"`
	Percentage         float64 `json:"percentage"`
}

// Summarize aggregates identity spans per speaker in order of first
// appearance. Percentages are shares of total diarized speech time rather
// than of the recording length.
func Summarize(spans []timeline.IdentitySpan) []SpeakerSummary {
	if len(spans) == 0 {
		return nil
	}
	index := make(map[string]int)
	var out []SpeakerSummary
	var speech float64
	for _, span := range spans {
		i, ok := index[span.Speaker]
		if !ok {
			i = len(out)
			index[span.Speaker] = i
			out = append(out, SpeakerSummary{Speaker: span.Speaker})
		}
		out[i].TotalDuration += span.Duration()
		out[i].NumSegments++
		speech += span.Duration()
	}
	for i := range out {
		s := &out[i]
		if s.NumSegments > 0 {
			s.AvgSegmentDuration = timeline.Round2(s.TotalDuration / float64(s.NumSegments))
		}
		if speech > 0 {
			s.Percentage = timeline.Round1(s.TotalDuration / speech * 100)
		}
		s.TotalDuration = timeline.Round2(s.TotalDuration)
	}
	return out
}

func itoa(v int) string { return strconv.Itoa(v) }
