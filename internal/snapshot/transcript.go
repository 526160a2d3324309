package snapshot

import (
	"strings"
	"time"

	"speakerline/internal/speakerstats"
	"speakerline/internal/timeline"
)

// ModelInfo names the collaborators that produced the raw spans.
type ModelInfo struct {
	Transcription string `json:"transcription"`
	Diarization   string `json:"diarization"`
}

// TranscriptMetadata describes a merged transcript.
type TranscriptMetadata struct {
	VideoName       string    `json:"video_name"`
	DurationSeconds float64   `json:"duration_seconds"`
	Language        string    `json:"language"`
	NumSpeakers     int       `json:"num_speakers"`
	NumSegments     int       `json:"num_segments"`
	ProcessedAt     time.Time `json:"processed_at"`
	RunID           string    `json:"run_id"`
	ModelInfo       ModelInfo `json:"model_info"`
}

// TimelineEntry is one attributed span as written to disk.
type TimelineEntry struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Duration   float64 `json:"duration"`
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Transcript is the merged-timeline snapshot.
type Transcript struct {
	Metadata       TranscriptMetadata            `json:"metadata"`
	Speakers       map[string]speakerstats.Stats `json:"speakers"`
	Timeline       []TimelineEntry               `json:"timeline"`
	FullTranscript string                        `json:"full_transcript"`
}

// TranscriptInput gathers the pipeline outputs for BuildTranscript.
type TranscriptInput struct {
	VideoName   string
	Language    string
	Text        string
	Aligned     []timeline.AlignedSpan
	Speakers    map[string]speakerstats.Stats
	ProcessedAt time.Time
	RunID       string
	Models      ModelInfo
}

// BuildTranscript assembles the transcript snapshot. Duration is the end of
// the last aligned span. When the collaborator supplied no full text the
// span texts are joined instead.
func BuildTranscript(in TranscriptInput) Transcript {
	entries := make([]TimelineEntry, 0, len(in.Aligned))
	for _, span := range in.Aligned {
		entries = append(entries, TimelineEntry{
			Start:      timeline.Round2(span.Start),
			End:        timeline.Round2(span.End),
			Duration:   timeline.Round2(span.Duration()),
			Speaker:    span.Speaker,
			Text:       span.Text,
			Confidence: span.Confidence,
		})
	}

	speakers := make(map[string]speakerstats.Stats, len(in.Speakers))
	for label, stats := range in.Speakers {
		speakers[label] = stats
	}

	var duration float64
	if n := len(in.Aligned); n > 0 {
		duration = timeline.Round2(in.Aligned[n-1].End)
	}

	full := strings.TrimSpace(in.Text)
	if full == "" {
		full = strings.Join(timeline.Texts(in.Aligned), " ")
	}

	processed := in.ProcessedAt
	if processed.IsZero() {
		processed = time.Now()
	}

	return Transcript{
		Metadata: TranscriptMetadata{
			VideoName:       in.VideoName,
			DurationSeconds: duration,
			Language:        in.Language,
			NumSpeakers:     len(speakers),
			NumSegments:     len(entries),
			ProcessedAt:     processed.UTC().Truncate(time.Second),
			RunID:           in.RunID,
			ModelInfo:       in.Models,
		},
		Speakers:       speakers,
		Timeline:       entries,
		FullTranscript: full,
	}
}

// Aligned rebuilds the in-memory aligned spans from the timeline.
func (t Transcript) Aligned() []timeline.AlignedSpan {
	out := make([]timeline.AlignedSpan, 0, len(t.Timeline))
	for _, entry := range t.Timeline {
		out = append(out, timeline.AlignedSpan{
			TextSpan: timeline.TextSpan{
				Interval:   timeline.Interval{Start: entry.Start, End: entry.End},
				Text:       entry.Text,
				Confidence: entry.Confidence,
			},
			Speaker: entry.Speaker,
		})
	}
	return out
}

// SortedSpeakers returns the speaker stats ordered for display.
func (t Transcript) SortedSpeakers() []speakerstats.Stats {
	return speakerstats.Sorted(t.Speakers)
}
