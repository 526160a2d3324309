package snapshot_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"speakerline/internal/alignment"
	"speakerline/internal/qa"
	"speakerline/internal/services"
	"speakerline/internal/snapshot"
	"speakerline/internal/speakerstats"
	"speakerline/internal/timeline"
)

func sampleTranscript(t *testing.T) snapshot.Transcript {
	t.Helper()
	ids := []timeline.IdentitySpan{
		{Interval: timeline.Interval{Start: 0, End: 6}, Speaker: "SPEAKER_00"},
		{Interval: timeline.Interval{Start: 6, End: 12}, Speaker: "SPEAKER_01"},
		{Interval: timeline.Interval{Start: 40, End: 41}, Speaker: "SPEAKER_02"},
	}
	text := []timeline.TextSpan{
		{Interval: timeline.Interval{Start: 0, End: 5.004}, Text: "Hello there", Confidence: 0.9},
		{Interval: timeline.Interval{Start: 6, End: 11.5}, Text: "Hi <team> & co", Confidence: 0.8},
	}
	aligned := alignment.Align(text, ids)
	return snapshot.BuildTranscript(snapshot.TranscriptInput{
		VideoName:   "interview.mp4",
		Language:    "en",
		Text:        "  Hello there Hi <team> & co ",
		Aligned:     aligned,
		Speakers:    speakerstats.Aggregate(aligned, speakerstats.KnownSpeakers(ids)),
		ProcessedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		RunID:       "run-1",
		Models:      snapshot.ModelInfo{Transcription: "WhisperX", Diarization: "pyannote.audio 3.1"},
	})
}

func TestBuildTranscript(t *testing.T) {
	tr := sampleTranscript(t)
	meta := tr.Metadata
	if meta.DurationSeconds != 11.5 || meta.NumSegments != 2 || meta.NumSpeakers != 3 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if tr.FullTranscript != "Hello there Hi <team> & co" {
		t.Fatalf("unexpected full transcript %q", tr.FullTranscript)
	}
	if got := tr.Timeline[0]; got.End != 5 || got.Duration != 5 || got.Speaker != "SPEAKER_00" {
		t.Fatalf("unexpected first entry: %+v", got)
	}
	if silent := tr.Speakers["SPEAKER_02"]; silent.SegmentCount != 0 {
		t.Fatalf("expected silent speaker entry, got %+v", silent)
	}
	if got := tr.SortedSpeakers()[0].Speaker; got != "SPEAKER_01" {
		t.Fatalf("expected longest speaker first, got %s", got)
	}
}

func TestBuildTranscriptEmptyKeepsKeys(t *testing.T) {
	tr := snapshot.BuildTranscript(snapshot.TranscriptInput{VideoName: "empty"})
	data, err := snapshot.Encode(tr, snapshot.WriteOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, key := range []string{`"speakers":{}`, `"timeline":[]`, `"full_transcript":""`, `"language":""`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in %s", key, data)
		}
	}
	issues, err := snapshot.Validate(snapshot.KindTranscript, data)
	if err != nil || len(issues) != 0 {
		t.Fatalf("empty transcript should validate: %v %v", issues, err)
	}
}

func TestBuildQA(t *testing.T) {
	tr := sampleTranscript(t)
	windows, err := qa.Partition([]string{"Intro?", "Why?", "Questions?"}, tr.Aligned(), 10)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	q := snapshot.BuildQA(tr, windows, "", time.Time{})
	if q.Metadata.TotalQuestions != 3 || q.Metadata.MatchingMethod != "equal_time_segmentation" {
		t.Fatalf("unexpected metadata: %+v", q.Metadata)
	}
	if q.Metadata.AvgSegmentDuration != 3.33 || q.Metadata.QuestionsSource != qa.DefaultQuestionsSource {
		t.Fatalf("unexpected metadata: %+v", q.Metadata)
	}
	if w := q.QAPairs[1].Window; w.Start != 3.33 || w.End != 6.67 || w.Duration != 3.33 {
		t.Fatalf("unexpected rounded window: %+v", w)
	}
	if q.OriginalTranscriptMetadata.NumSegments != 2 || q.OriginalTranscriptMetadata.Language != "en" {
		t.Fatalf("unexpected source metadata: %+v", q.OriginalTranscriptMetadata)
	}
	if q.QAPairs[0].PerSpeakerText == nil {
		t.Fatal("per-speaker text must never be nil")
	}
}

func TestQAPairKeys(t *testing.T) {
	tr := sampleTranscript(t)
	windows, err := qa.Partition([]string{"Intro?"}, tr.Aligned(), 10)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	q := snapshot.BuildQA(tr, windows, "", time.Time{})
	data, err := json.Marshal(q.QAPairs[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := make([]string, 0, len(decoded))
	for key := range decoded {
		got = append(got, key)
	}
	sort.Strings(got)
	want := []string{"concatenated_text", "index", "per_speaker_text", "question_text", "segment_count", "window", "word_count"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("qa pair keys = %v, want %v", got, want)
	}
	if string(decoded["question_text"]) != `"Intro?"` {
		t.Fatalf("unexpected question_text %s", decoded["question_text"])
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tr := sampleTranscript(t)
	windows, err := qa.Partition([]string{"one", "two"}, tr.Aligned(), tr.Metadata.DurationSeconds)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	q := snapshot.BuildQA(tr, windows, "questions.txt", time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC))

	for _, name := range []string{"transcript.json", "transcript.json.gz"} {
		path := filepath.Join(dir, name)
		if err := snapshot.Write(path, tr, snapshot.WriteOptions{Pretty: true}); err != nil {
			t.Fatalf("Write %s: %v", name, err)
		}
		got, err := snapshot.ReadTranscript(path)
		if err != nil {
			t.Fatalf("ReadTranscript %s: %v", name, err)
		}
		if !reflect.DeepEqual(got, tr) {
			t.Fatalf("%s round trip mismatch:\n got %+v\nwant %+v", name, got, tr)
		}
	}

	path := filepath.Join(dir, "nested", "qa.json")
	if err := snapshot.Write(path, q, snapshot.WriteOptions{}); err != nil {
		t.Fatalf("Write qa: %v", err)
	}
	got, err := snapshot.ReadQA(path)
	if err != nil {
		t.Fatalf("ReadQA: %v", err)
	}
	if !reflect.DeepEqual(got, q) {
		t.Fatalf("qa round trip mismatch:\n got %+v\nwant %+v", got, q)
	}

	again, err := snapshot.Encode(got, snapshot.WriteOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(again) != string(first) {
		t.Fatalf("re-encoded snapshot differs:\n%s\n%s", again, first)
	}
}

func TestWriteKeepsLocksOutOfOutputDir(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.json")
	for i := 0; i < 2; i++ {
		if err := snapshot.Write(path, sampleTranscript(t), snapshot.WriteOptions{}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "transcript.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("output dir should hold only the snapshot, got %v", names)
	}
	locks, err := os.ReadDir(snapshot.LockDir())
	if err != nil {
		t.Fatalf("ReadDir lock dir: %v", err)
	}
	if len(locks) != 1 || !strings.HasSuffix(locks[0].Name(), ".lock") {
		t.Fatalf("expected one lock file in %s, got %d", snapshot.LockDir(), len(locks))
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := snapshot.ReadTranscript(filepath.Join(dir, "missing.json")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"metadata":{},"timeline":[]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := snapshot.ReadTranscript(path)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateReportsIssues(t *testing.T) {
	tr := sampleTranscript(t)
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	delete(doc, "full_transcript")
	doc["extra"] = true
	broken, _ := json.Marshal(doc)

	issues, err := snapshot.Validate(snapshot.KindTranscript, broken)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("expected schema issues")
	}

	issues, err = snapshot.Validate(snapshot.KindQA, []byte("not json"))
	if err != nil || len(issues) != 1 || !strings.Contains(issues[0], "JSON parse error") {
		t.Fatalf("expected parse issue, got %v %v", issues, err)
	}
}

func TestSchemaAndKinds(t *testing.T) {
	raw, err := snapshot.Schema(snapshot.KindQA)
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if !strings.Contains(string(raw), `"per_speaker_text"`) || !strings.Contains(string(raw), `"qa_pairs"`) {
		t.Fatalf("schema missing properties: %s", raw)
	}
	if kind, err := snapshot.ParseKind(" QA "); err != nil || kind != snapshot.KindQA {
		t.Fatalf("ParseKind = %v, %v", kind, err)
	}
	if _, err := snapshot.ParseKind("timeline"); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
