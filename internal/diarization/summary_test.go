package diarization_test

import (
	"errors"
	"reflect"
	"testing"

	"speakerline/internal/diarization"
	"speakerline/internal/services"
	"speakerline/internal/timeline"
)

func TestSummarize(t *testing.T) {
	got := diarization.Summarize([]timeline.IdentitySpan{
		span(0, 10, "SPEAKER_01"),
		span(10, 15, "SPEAKER_00"),
		span(15, 25, "SPEAKER_01"),
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(got))
	}
	first := got[0]
	if first.Speaker != "SPEAKER_01" || first.TotalDuration != 20 || first.NumSegments != 2 || first.AvgSegmentDuration != 10 || first.Percentage != 80 {
		t.Fatalf("unexpected first summary: %+v", first)
	}
	if got[1].Percentage != 20 {
		t.Fatalf("unexpected second percentage: %+v", got[1])
	}
	if diarization.Summarize(nil) != nil {
		t.Fatal("expected nil summary for empty input")
	}
}

func TestHints(t *testing.T) {
	if !(diarization.Hints{}).IsZero() {
		t.Fatal("expected zero hints")
	}
	exact := diarization.Hints{NumSpeakers: 2, MinSpeakers: 1, MaxSpeakers: 4}
	if got, want := exact.Args(), []string{"--num_speakers", "2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Args = %v, want %v", got, want)
	}
	rng := diarization.Hints{MinSpeakers: 1, MaxSpeakers: 4}
	if got, want := rng.Args(), []string{"--min_speakers", "1", "--max_speakers", "4"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Args = %v, want %v", got, want)
	}
	if err := (diarization.Hints{MinSpeakers: 5, MaxSpeakers: 2}).Validate(); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected invalid range error, got %v", err)
	}
	if err := (diarization.Hints{NumSpeakers: -1}).Validate(); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected negative count error, got %v", err)
	}
}
