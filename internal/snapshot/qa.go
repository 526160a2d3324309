package snapshot

import (
	"time"

	"speakerline/internal/qa"
	"speakerline/internal/timeline"
)

// TimeWindow is a rounded question window.
type TimeWindow struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// QAPair is one question with its extracted answer.
type QAPair struct {
	Index            int             `json:"index"`
	QuestionText     string          `json:"question_text"`
	Window           TimeWindow      `json:"window"`
	ConcatenatedText string          `json:"concatenated_text"`
	PerSpeakerText   qa.SpeakerTexts `json:"per_speaker_text"`
	WordCount        int             `json:"word_count"`
	SegmentCount     int             `json:"segment_count"`
}

// QAMetadata describes a question/answer snapshot.
type QAMetadata struct {
	VideoName          string    `json:"video_name"`
	DurationSeconds    float64   `json:"duration_seconds"`
	TotalQuestions     int       `json:"total_questions"`
	AvgSegmentDuration float64   `json:"avg_segment_duration"`
	MatchingMethod     string    `json:"matching_method"`
	MatchedAt          time.Time `json:"matched_at"`
	QuestionsSource    string    `json:"questions_source"`
}

// SourceMetadata echoes the transcript the answers were cut from.
type SourceMetadata struct {
	NumSpeakers int    `json:"num_speakers"`
	NumSegments int    `json:"num_segments"`
	Language    string `json:"language"`
}

// QA is the question/answer snapshot.
type QA struct {
	Metadata                   QAMetadata     `json:"metadata"`
	QAPairs                    []QAPair       `json:"qa_pairs"`
	OriginalTranscriptMetadata SourceMetadata `json:"original_transcript_metadata"`
}

// BuildQA converts partition windows into the snapshot form, rounding
// window bounds to two decimals. A zero matchedAt means now.
func BuildQA(t Transcript, windows []qa.Window, source string, matchedAt time.Time) QA {
	pairs := make([]QAPair, 0, len(windows))
	var total float64
	for _, w := range windows {
		perSpeaker := w.PerSpeakerText
		if perSpeaker == nil {
			perSpeaker = qa.SpeakerTexts{}
		}
		pairs = append(pairs, QAPair{
			Index:        w.Index,
			QuestionText: w.Question,
			Window: TimeWindow{
				Start:    timeline.Round2(w.Window.Start),
				End:      timeline.Round2(w.Window.End),
				Duration: timeline.Round2(w.Window.Duration()),
			},
			ConcatenatedText: w.ConcatenatedText,
			PerSpeakerText:   perSpeaker,
			WordCount:        w.WordCount,
			SegmentCount:     w.SegmentCount,
		})
		if w.Window.End > total {
			total = w.Window.End
		}
	}
	if total == 0 {
		total = t.Metadata.DurationSeconds
	}
	if source == "" {
		source = qa.DefaultQuestionsSource
	}
	if matchedAt.IsZero() {
		matchedAt = time.Now()
	}

	return QA{
		Metadata: QAMetadata{
			VideoName:          t.Metadata.VideoName,
			DurationSeconds:    timeline.Round2(total),
			TotalQuestions:     len(pairs),
			AvgSegmentDuration: timeline.Round2(qa.SegmentDuration(total, len(pairs))),
			MatchingMethod:     qa.MatchingMethod,
			MatchedAt:          matchedAt.UTC().Truncate(time.Second),
			QuestionsSource:    source,
		},
		QAPairs: pairs,
		OriginalTranscriptMetadata: SourceMetadata{
			NumSpeakers: t.Metadata.NumSpeakers,
			NumSegments: t.Metadata.NumSegments,
			Language:    t.Metadata.Language,
		},
	}
}

// AverageWordCount returns the mean answer length in words.
func (q QA) AverageWordCount() float64 {
	if len(q.QAPairs) == 0 {
		return 0
	}
	var words int
	for _, pair := range q.QAPairs {
		words += pair.WordCount
	}
	return float64(words) / float64(len(q.QAPairs))
}
