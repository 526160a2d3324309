package whisperx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"speakerline/internal/services"
	"speakerline/internal/timeline"
)

// Transcript is the transcription collaborator's result.
type Transcript struct {
	Text     string
	Language string
	Spans    []timeline.TextSpan
	// Skipped counts segments dropped for blank text.
	Skipped int
}

// Duration returns the end of the last span, or 0 without spans.
func (t Transcript) Duration() float64 {
	var end float64
	for _, span := range t.Spans {
		end = math.Max(end, span.End)
	}
	return end
}

// Word represents a single word with timing from WhisperX output.
type Word struct {
	Word  string   `json:"word"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Score *float64 `json:"score,omitempty"`
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text       string   `json:"text"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Words      []Word   `json:"words"`
	AvgLogprob *float64 `json:"avg_logprob,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// whisperXPayload is the JSON structure from WhisperX output.
type whisperXPayload struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Load reads a transcript, choosing the parser by file extension.
func Load(path string) (Transcript, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadTranscript(path)
	case ".srt":
		return LoadSRT(path, "")
	default:
		return Transcript{}, services.InvalidArgument("transcription", "load", "unsupported transcript format %q (want .json or .srt)", filepath.Ext(path))
	}
}

// LoadTranscript reads WhisperX or Whisper JSON into text spans. Segment
// confidence comes from an explicit confidence field, then exp(avg_logprob),
// then the mean word score, else 0. Segments with blank text are skipped.
func LoadTranscript(path string) (Transcript, error) {
	payload, err := readPayload(path)
	if err != nil {
		return Transcript{}, err
	}

	out := Transcript{Language: strings.TrimSpace(payload.Language)}
	texts := make([]string, 0, len(payload.Segments))
	for i, seg := range payload.Segments {
		if strings.TrimSpace(seg.Text) == "" {
			out.Skipped++
			continue
		}
		span, err := timeline.NewTextSpan(seg.Start, seg.End, seg.Text, segmentConfidence(seg))
		if err != nil {
			return Transcript{}, fmt.Errorf("%s: segment %d: %w", path, i+1, err)
		}
		out.Spans = append(out.Spans, span)
		texts = append(texts, span.Text)
	}

	out.Text = strings.TrimSpace(payload.Text)
	if out.Text == "" {
		out.Text = strings.Join(texts, " ")
	}
	return out, nil
}

func readPayload(path string) (whisperXPayload, error) {
	var payload whisperXPayload
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return payload, services.Wrap(services.ErrNotFound, "transcription", "load", fmt.Sprintf("transcript %q not found", path), nil)
		}
		return payload, services.Wrap(services.ErrValidation, "transcription", "load", path, err)
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, services.Wrap(services.ErrValidation, "transcription", "parse whisperx json", path, err)
	}
	return payload, nil
}

func segmentConfidence(seg Segment) float64 {
	switch {
	case seg.Confidence != nil:
		return clamp01(*seg.Confidence)
	case seg.AvgLogprob != nil:
		return clamp01(math.Exp(*seg.AvgLogprob))
	}
	var sum float64
	var n int
	for _, word := range seg.Words {
		if word.Score != nil {
			sum += *word.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return clamp01(sum / float64(n))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
