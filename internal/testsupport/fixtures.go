package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Segment is a transcription segment written by WriteWhisperX.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Turn is a diarized speaker turn written by WriteRTTM.
type Turn struct {
	Start   float64
	End     float64
	Speaker string
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteWhisperX writes a WhisperX-style JSON transcript.
func WriteWhisperX(t testing.TB, dir, name, language string, segments []Segment) string {
	t.Helper()
	type segment struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	}
	payload := struct {
		Language string    `json:"language"`
		Segments []segment `json:"segments"`
	}{Language: language, Segments: make([]segment, 0, len(segments))}
	for _, s := range segments {
		payload.Segments = append(payload.Segments, segment(s))
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		t.Fatalf("marshal whisperx payload: %v", err)
	}
	return WriteFile(t, dir, name, string(data))
}

// WriteRTTM writes diarization turns in RTTM form.
func WriteRTTM(t testing.TB, dir, name string, turns []Turn) string {
	t.Helper()
	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "SPEAKER audio 1 %.3f %.3f <NA> <NA> %s <NA> <NA>\n", turn.Start, turn.End-turn.Start, turn.Speaker)
	}
	return WriteFile(t, dir, name, b.String())
}

// WriteQuestions writes one question per line.
func WriteQuestions(t testing.TB, dir, name string, questions ...string) string {
	t.Helper()
	return WriteFile(t, dir, name, strings.Join(questions, "\n")+"\n")
}
