package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"speakerline/internal/report"
	"speakerline/internal/snapshot"
)

const previewWidth = 60

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var snapshotPath string
	var jsonOut bool
	var showTimeline bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-speaker statistics from a transcript snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := snapshot.ReadTranscript(snapshotPath)
			if err != nil {
				return err
			}
			if wantJSON(cmd, jsonOut) {
				return writeJSON(cmd, t.SortedSpeakers())
			}

			out := cmd.OutOrStdout()
			meta := t.Metadata
			fmt.Fprintf(out, "%s: %s, %d segments, language %s\n", meta.VideoName, report.Clock(meta.DurationSeconds), meta.NumSegments, meta.Language)

			rows := make([][]string, 0, len(t.Speakers))
			for _, s := range t.SortedSpeakers() {
				rows = append(rows, []string{
					s.Speaker,
					formatSeconds(s.TotalDuration),
					strconv.Itoa(s.WordCount),
					strconv.Itoa(s.SegmentCount),
					strconv.FormatFloat(s.Percentage, 'f', 1, 64) + "%",
				})
			}
			fmt.Fprintln(out, renderTable("Speakers", []column{
				{Header: "Speaker"},
				{Header: "Duration (s)", Align: alignRight},
				{Header: "Words", Align: alignRight},
				{Header: "Segments", Align: alignRight},
				{Header: "Share", Align: alignRight},
			}, rows))

			if showTimeline {
				rows := make([][]string, 0, len(t.Timeline))
				for _, entry := range t.Timeline {
					rows = append(rows, []string{report.Clock(entry.Start), report.Clock(entry.End), entry.Speaker, report.Preview(entry.Text, previewWidth)})
				}
				fmt.Fprintln(out, renderTable("Timeline", []column{
					{Header: "Start", Align: alignRight},
					{Header: "End", Align: alignRight},
					{Header: "Speaker"},
					{Header: "Text"},
				}, rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "Transcript snapshot")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print JSON instead of a table")
	cmd.Flags().BoolVar(&showTimeline, "timeline", false, "Also list the timeline with text previews")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
