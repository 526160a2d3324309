package report

import (
	"fmt"
	"strings"
	"time"

	"speakerline/internal/snapshot"
)

// TranscriptText renders the transcript snapshot as a readable text file:
// header, timeline, speaker statistics, then the full transcript.
func TranscriptText(t snapshot.Transcript) string {
	var b strings.Builder
	meta := t.Metadata
	fmt.Fprintf(&b, "Video: %s\n", meta.VideoName)
	fmt.Fprintf(&b, "Duration: %ss\n", formatFloat(meta.DurationSeconds))
	fmt.Fprintf(&b, "Language: %s\n", languageLabel(meta.Language))
	fmt.Fprintf(&b, "Speakers: %d\n", meta.NumSpeakers)
	fmt.Fprintf(&b, "Processed: %s\n", meta.ProcessedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "\n%s\n\n", rule)

	b.WriteString("TIMELINE\n")
	fmt.Fprintf(&b, "%s\n\n", rule)
	for _, entry := range t.Timeline {
		fmt.Fprintf(&b, "[%.2fs - %.2fs] %s:\n  %s\n\n", entry.Start, entry.End, entry.Speaker, entry.Text)
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	b.WriteString("SPEAKER STATISTICS\n")
	fmt.Fprintf(&b, "%s\n\n", rule)
	for _, stats := range t.SortedSpeakers() {
		fmt.Fprintf(&b, "%s:\n", stats.Speaker)
		fmt.Fprintf(&b, "  Total duration: %ss\n", formatFloat(stats.TotalDuration))
		fmt.Fprintf(&b, "  Words: %d\n", stats.WordCount)
		fmt.Fprintf(&b, "  Segments: %d\n", stats.SegmentCount)
		fmt.Fprintf(&b, "  Share: %s%%\n\n", formatFloat(stats.Percentage))
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	b.WriteString("FULL TRANSCRIPT\n")
	fmt.Fprintf(&b, "%s\n\n", rule)
	b.WriteString(t.FullTranscript)
	b.WriteString("\n")
	return b.String()
}
