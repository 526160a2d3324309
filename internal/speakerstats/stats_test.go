package speakerstats_test

import (
	"math"
	"reflect"
	"testing"

	"speakerline/internal/alignment"
	"speakerline/internal/speakerstats"
	"speakerline/internal/timeline"
)

func aligned(start, end float64, body, speaker string) timeline.AlignedSpan {
	return timeline.AlignedSpan{
		TextSpan: timeline.TextSpan{Interval: timeline.Interval{Start: start, End: end}, Text: body, Confidence: 1},
		Speaker:  speaker,
	}
}

func TestAggregateSingleSpeaker(t *testing.T) {
	ids := []timeline.IdentitySpan{{Interval: timeline.Interval{Start: 0, End: 5}, Speaker: "SPEAKER_00"}}
	spans := alignment.Align([]timeline.TextSpan{{Interval: timeline.Interval{Start: 0, End: 5}, Text: "Hello", Confidence: 1}}, ids)

	got := speakerstats.Aggregate(spans, speakerstats.KnownSpeakers(ids))
	want := speakerstats.Stats{Speaker: "SPEAKER_00", TotalDuration: 5, WordCount: 1, SegmentCount: 1, Percentage: 100}
	if len(got) != 1 || got["SPEAKER_00"] != want {
		t.Fatalf("Aggregate = %+v, want %+v", got, want)
	}
}

func TestAggregateIncludesSilentKnownSpeakers(t *testing.T) {
	got := speakerstats.Aggregate([]timeline.AlignedSpan{
		aligned(0, 4, "one two three", "A"),
		aligned(4, 6, "four", timeline.UnknownSpeaker),
	}, []string{"A", "B"})
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %+v", got)
	}
	if silent := got["B"]; silent != (speakerstats.Stats{Speaker: "B"}) {
		t.Fatalf("expected zero stats for B, got %+v", silent)
	}
	if got["A"].WordCount != 3 || got[timeline.UnknownSpeaker].SegmentCount != 1 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAggregatePercentagesSumToHundred(t *testing.T) {
	spans := []timeline.AlignedSpan{
		aligned(0, 3.333, "a", "A"),
		aligned(3.333, 6.667, "b", "B"),
		aligned(6.667, 10, "c", "C"),
	}
	got := speakerstats.Aggregate(spans, nil)
	if total := speakerstats.TotalPercentage(got); math.Abs(total-100) > 0.1+1e-9 {
		t.Fatalf("percentages sum to %v", total)
	}
}

func TestAggregateZeroTimeline(t *testing.T) {
	got := speakerstats.Aggregate(nil, []string{"A"})
	if got["A"].Percentage != 0 {
		t.Fatalf("expected zero percentage, got %+v", got)
	}
	zero := speakerstats.Aggregate([]timeline.AlignedSpan{aligned(0, 0, "x", "A")}, nil)
	if zero["A"].Percentage != 0 || zero["A"].SegmentCount != 1 {
		t.Fatalf("unexpected zero-length stats: %+v", zero)
	}
}

func TestAggregateRoundsDurations(t *testing.T) {
	got := speakerstats.Aggregate([]timeline.AlignedSpan{aligned(0, 1.005001, "x", "A"), aligned(1.005001, 3, "y", "B")}, nil)
	if got["A"].TotalDuration != 1.01 {
		t.Fatalf("expected duration rounded to 1.01, got %v", got["A"].TotalDuration)
	}
}

func TestSortedAndKnownSpeakers(t *testing.T) {
	stats := map[string]speakerstats.Stats{
		"B": {Speaker: "B", TotalDuration: 5},
		"A": {Speaker: "A", TotalDuration: 5},
		"C": {Speaker: "C", TotalDuration: 9},
	}
	var order []string
	for _, entry := range speakerstats.Sorted(stats) {
		order = append(order, entry.Speaker)
	}
	if want := []string{"C", "A", "B"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("Sorted order = %v, want %v", order, want)
	}

	ids := []timeline.IdentitySpan{{Speaker: "S1"}, {Speaker: "S0"}, {Speaker: "S1"}}
	if got, want := speakerstats.KnownSpeakers(ids), []string{"S1", "S0"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("KnownSpeakers = %v, want %v", got, want)
	}
}
