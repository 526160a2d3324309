package qa_test

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"speakerline/internal/qa"
	"speakerline/internal/services"
	"speakerline/internal/timeline"
)

func aligned(start, end float64, body, speaker string) timeline.AlignedSpan {
	return timeline.AlignedSpan{
		TextSpan: timeline.TextSpan{Interval: timeline.Interval{Start: start, End: end}, Text: body, Confidence: 1},
		Speaker:  speaker,
	}
}

func TestPartitionExactBoundaries(t *testing.T) {
	windows, err := qa.Partition([]string{"q1", "q2", "q3"}, nil, 180)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	want := []timeline.Interval{{Start: 0, End: 60}, {Start: 60, End: 120}, {Start: 120, End: 180}}
	for i, window := range windows {
		if window.Window != want[i] {
			t.Fatalf("window %d = %+v, want %+v", i, window.Window, want[i])
		}
		if window.Index != i+1 {
			t.Fatalf("window %d index = %d", i, window.Index)
		}
	}
}

func TestPartitionPinsLastBoundary(t *testing.T) {
	const total = 100.0
	windows, err := qa.Partition([]string{"a", "b", "c", "d", "e", "f", "g"}, nil, total)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if windows[0].Window.Start != 0 || windows[len(windows)-1].Window.End != total {
		t.Fatalf("windows do not cover [0, %v]: %+v", total, windows)
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].Window.Start != windows[i-1].Window.End {
			t.Fatalf("gap between windows %d and %d", i-1, i)
		}
	}
}

func TestPartitionLateAnswer(t *testing.T) {
	windows, err := qa.Partition([]string{"q1", "q2", "q3"}, []timeline.AlignedSpan{
		aligned(170, 175, "answer text", "SPEAKER_00"),
	}, 180)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if !windows[0].Empty() || !windows[1].Empty() {
		t.Fatalf("expected first two windows empty: %+v", windows[:2])
	}
	last := windows[2]
	if last.ConcatenatedText != "answer text" || last.WordCount != 2 || last.SegmentCount != 1 {
		t.Fatalf("unexpected last window: %+v", last)
	}
	if text, ok := last.PerSpeakerText.Lookup("SPEAKER_00"); !ok || text != "answer text" {
		t.Fatalf("unexpected per-speaker text: %+v", last.PerSpeakerText)
	}
}

func TestPartitionBoundarySpans(t *testing.T) {
	windows, err := qa.Partition([]string{"q1", "q2"}, []timeline.AlignedSpan{
		aligned(40, 50, "touching", "A"),
		aligned(45, 55, "crossing", "B"),
		aligned(50, 60, "second", "A"),
	}, 100)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if windows[0].ConcatenatedText != "touching crossing" {
		t.Fatalf("window 1 text = %q", windows[0].ConcatenatedText)
	}
	if windows[1].ConcatenatedText != "crossing second" {
		t.Fatalf("window 2 text = %q", windows[1].ConcatenatedText)
	}
	if got, want := windows[1].PerSpeakerText.Speakers(), []string{"B", "A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("speaker order = %v, want %v", got, want)
	}
}

func TestPartitionGroupsSpeakerText(t *testing.T) {
	windows, err := qa.Partition([]string{"only"}, []timeline.AlignedSpan{
		aligned(0, 1, "hello", "A"),
		aligned(1, 2, "hi", "B"),
		aligned(2, 3, "again", "A"),
	}, 3)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	want := qa.SpeakerTexts{{Speaker: "A", Text: "hello again"}, {Speaker: "B", Text: "hi"}}
	if !reflect.DeepEqual(windows[0].PerSpeakerText, want) {
		t.Fatalf("PerSpeakerText = %+v, want %+v", windows[0].PerSpeakerText, want)
	}
}

func TestPartitionTextUsesEmptySpeaker(t *testing.T) {
	spans := []timeline.TextSpan{
		{Interval: timeline.Interval{Start: 1, End: 2}, Text: "first"},
		{Interval: timeline.Interval{Start: 6, End: 7}, Text: "second"},
	}
	windows, err := qa.PartitionText([]string{"A?", "B?"}, spans, 10)
	if err != nil {
		t.Fatalf("PartitionText: %v", err)
	}
	if len(windows) != 2 || windows[0].ConcatenatedText != "first" || windows[1].ConcatenatedText != "second" {
		t.Fatalf("unexpected windows: %+v", windows)
	}
	want := qa.SpeakerTexts{{Speaker: "", Text: "first"}}
	if !reflect.DeepEqual(windows[0].PerSpeakerText, want) {
		t.Fatalf("per-speaker text = %+v, want %+v", windows[0].PerSpeakerText, want)
	}
	if _, err := qa.PartitionText(nil, spans, 10); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty questions, got %v", err)
	}
}

func TestPartitionRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		questions []string
		total     float64
	}{
		{"no questions", nil, 10},
		{"blank questions", []string{"  ", ""}, 10},
		{"zero duration", []string{"q"}, 0},
		{"negative duration", []string{"q"}, -5},
		{"nan duration", []string{"q"}, math.NaN()},
	}
	for _, tt := range tests {
		if _, err := qa.Partition(tt.questions, nil, tt.total); !errors.Is(err, services.ErrInvalidArgument) {
			t.Errorf("%s: expected invalid argument, got %v", tt.name, err)
		}
	}
}

func TestSpeakerTextsJSONKeepsOrder(t *testing.T) {
	texts := qa.SpeakerTexts{{Speaker: "SPEAKER_01", Text: "b"}, {Speaker: "SPEAKER_00", Text: "a \"quoted\""}}
	data, err := json.Marshal(texts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"SPEAKER_01":"b","SPEAKER_00":"a \"quoted\""}`; string(data) != want {
		t.Fatalf("Marshal = %s, want %s", data, want)
	}
	var decoded qa.SpeakerTexts
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, texts) {
		t.Fatalf("decoded = %+v, want %+v", decoded, texts)
	}

	empty, err := json.Marshal(qa.SpeakerTexts(nil))
	if err != nil || string(empty) != "{}" {
		t.Fatalf("empty marshal = %s, %v", empty, err)
	}
	if err := json.Unmarshal([]byte(`["x"]`), &decoded); err == nil {
		t.Fatal("expected error for non-object input")
	}
}
