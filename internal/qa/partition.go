package qa

import (
	"math"
	"strings"

	"speakerline/internal/services"
	"speakerline/internal/timeline"
)

// MatchingMethod names the segmentation strategy in snapshots.
const MatchingMethod = "equal_time_segmentation"

// Window is the answer extracted for one question. Boundaries are kept
// unrounded.
type Window struct {
	Index            int
	Question         string
	Window           timeline.Interval
	ConcatenatedText string
	PerSpeakerText   SpeakerTexts
	WordCount        int
	SegmentCount     int
}

// Empty reports whether no speech fell inside the window.
func (w Window) Empty() bool {
	return w.ConcatenatedText == ""
}

// Partition divides [0, total] into one window per question and collects the
// spans overlapping each window. Blank questions are discarded first.
func Partition(questions []string, spans []timeline.AlignedSpan, total float64) ([]Window, error) {
	cleaned := cleanQuestions(questions)
	if len(cleaned) == 0 {
		return nil, services.InvalidArgument("qa", "partition", "question list is empty")
	}
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return nil, services.InvalidArgument("qa", "partition", "total duration %v must be positive", total)
	}

	n := len(cleaned)
	segment := total / float64(n)
	windows := make([]Window, 0, n)
	for i, question := range cleaned {
		start := float64(i) * segment
		end := float64(i+1) * segment
		if i == n-1 {
			end = total
		}
		bounds := timeline.Interval{Start: start, End: end}
		windows = append(windows, collect(i+1, question, bounds, spans))
	}
	return windows, nil
}

// PartitionText partitions a transcript that has not been aligned. Every
// span is attributed to the empty speaker label.
func PartitionText(questions []string, spans []timeline.TextSpan, total float64) ([]Window, error) {
	unattributed := make([]timeline.AlignedSpan, len(spans))
	for i, span := range spans {
		unattributed[i] = timeline.AlignedSpan{TextSpan: span}
	}
	return Partition(questions, unattributed, total)
}

// SegmentDuration is the nominal window length for n questions.
func SegmentDuration(total float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return total / float64(n)
}

func collect(index int, question string, bounds timeline.Interval, spans []timeline.AlignedSpan) Window {
	window := Window{Index: index, Question: question, Window: bounds, PerSpeakerText: SpeakerTexts{}}
	var texts []string
	grouped := make(map[string][]string)
	var order []string
	for _, span := range spans {
		if !span.Intersects(bounds) {
			continue
		}
		texts = append(texts, span.Text)
		if _, ok := grouped[span.Speaker]; !ok {
			order = append(order, span.Speaker)
		}
		grouped[span.Speaker] = append(grouped[span.Speaker], span.Text)
	}
	window.ConcatenatedText = strings.Join(texts, " ")
	window.WordCount = timeline.WordCount(window.ConcatenatedText)
	window.SegmentCount = len(texts)
	for _, speaker := range order {
		window.PerSpeakerText = append(window.PerSpeakerText, SpeakerText{
			Speaker: speaker,
			Text:    strings.Join(grouped[speaker], " "),
		})
	}
	return window
}

func cleanQuestions(questions []string) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}
