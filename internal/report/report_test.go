package report_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"speakerline/internal/qa"
	"speakerline/internal/report"
	"speakerline/internal/services"
	"speakerline/internal/snapshot"
	"speakerline/internal/speakerstats"
	"speakerline/internal/timeline"
)

func fixture() (snapshot.Transcript, snapshot.QA) {
	aligned := []timeline.AlignedSpan{
		{TextSpan: timeline.TextSpan{Interval: timeline.Interval{Start: 1, End: 4}, Text: "Tell me about yourself.", Confidence: 0.9}, Speaker: "SPEAKER_00"},
		{TextSpan: timeline.TextSpan{Interval: timeline.Interval{Start: 130, End: 150}, Text: "I build pipelines.", Confidence: 0.8}, Speaker: "SPEAKER_01"},
	}
	tr := snapshot.BuildTranscript(snapshot.TranscriptInput{
		VideoName:   "candidate.mp4",
		Language:    "en",
		Aligned:     aligned,
		Speakers:    speakerstats.Aggregate(aligned, []string{"SPEAKER_00", "SPEAKER_01"}),
		ProcessedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	windows, err := qa.Partition([]string{"Intro", "Experience", "Wrap-up"}, aligned, 180)
	if err != nil {
		panic(err)
	}
	return tr, snapshot.BuildQA(tr, windows, "questions.txt", time.Date(2026, 1, 2, 3, 10, 0, 0, time.UTC))
}

func TestClock(t *testing.T) {
	tests := map[float64]string{0: "0:00", 59.9: "0:59", 60: "1:00", 3725: "62:05", -3: "0:00"}
	for input, want := range tests {
		if got := report.Clock(input); got != want {
			t.Errorf("Clock(%v) = %q, want %q", input, got, want)
		}
	}
}

func TestTranscriptText(t *testing.T) {
	tr, _ := fixture()
	out := report.TranscriptText(tr)
	for _, want := range []string{
		"Video: candidate.mp4",
		"Duration: 150s",
		"[130.00s - 150.00s] SPEAKER_01:\n  I build pipelines.",
		"SPEAKER STATISTICS",
		"Share: 13.3%",
		"FULL TRANSCRIPT",
		"Tell me about yourself. I build pipelines.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestQAMarkdown(t *testing.T) {
	_, q := fixture()
	out := report.QAMarkdown(q)
	for _, want := range []string{
		"# Interview Q&A Report",
		"**Duration:** 180 seconds (3:00)",
		"## Question 2: Experience",
		"**Time range:** 1:00 - 2:00 (60 seconds)",
		report.NoSpeechPlaceholder,
		"**Speakers:** SPEAKER_01",
		"> I build pipelines.",
		"**Created:** 2026-01-02 03:10",
		"- **Average words per answer:** 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestHTML(t *testing.T) {
	html, err := report.HTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, "<h1>Title</h1>") || !strings.Contains(html, "<table>") {
		t.Fatalf("unexpected html: %s", html)
	}
	page, err := report.HTMLDocument("a <b>", "text")
	if err != nil || !strings.Contains(page, "<title>a &lt;b&gt;</title>") {
		t.Fatalf("unexpected document: %s %v", page, err)
	}
}

func TestYAMLKeepsSnapshotKeys(t *testing.T) {
	tr, _ := fixture()
	data, err := report.YAML(tr)
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"metadata", "speakers", "timeline", "full_transcript"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %s", key)
		}
	}
	if strings.Index(string(data), "metadata:") > strings.Index(string(data), "timeline:") {
		t.Fatalf("expected JSON key order to be preserved:\n%s", data)
	}
	if strings.Contains(string(data), "{") {
		t.Fatalf("expected block style yaml:\n%s", data)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]report.Format{"JSON": report.FormatJSON, "md": report.FormatMarkdown, "yml": report.FormatYAML, " html ": report.FormatHTML}
	for input, want := range tests {
		got, err := report.ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := report.ParseFormat("pdf"); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if report.FormatMarkdown.Extension() != ".md" {
		t.Fatal("unexpected markdown extension")
	}
}

func TestRender(t *testing.T) {
	tr, q := fixture()
	for _, format := range report.Formats {
		if out, err := report.RenderTranscript(tr, format, true); err != nil || len(out) == 0 {
			t.Errorf("RenderTranscript(%s) = %d bytes, %v", format, len(out), err)
		}
		if out, err := report.RenderQA(q, format, false); err != nil || len(out) == 0 {
			t.Errorf("RenderQA(%s) = %d bytes, %v", format, len(out), err)
		}
	}
}

func TestPreview(t *testing.T) {
	if got := report.Preview("a long answer that keeps going", 10); got != "a long an…" {
		t.Fatalf("Preview = %q", got)
	}
}
