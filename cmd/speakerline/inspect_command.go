package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"speakerline/internal/diarization"
	"speakerline/internal/report"
	"speakerline/internal/services/pyannote"
	"speakerline/internal/timeline"
)

type inspectReport struct {
	Source       string                       `json:"source"`
	RawSpans     int                          `json:"raw_spans"`
	CleanedSpans int                          `json:"cleaned_spans"`
	Options      diarization.Options          `json:"options"`
	Speakers     []string                     `json:"speakers"`
	Extent       *timeline.Interval           `json:"extent,omitempty"`
	Raw          []diarization.SpeakerSummary `json:"raw"`
	Cleaned      []diarization.SpeakerSummary `json:"cleaned"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var diarizationPath string
	var jsonOut bool
	var rttmOut bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a diarization result before and after cleaning",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			raw, err := pyannote.Load(diarizationPath)
			if err != nil {
				return err
			}
			opts := cfg.DiarizationOptions()
			cleaned := diarization.Clean(raw, opts)

			if rttmOut {
				_, err := fmt.Fprint(cmd.OutOrStdout(), pyannote.FormatRTTM("audio", cleaned))
				return err
			}

			rep := inspectReport{
				Source:       diarizationPath,
				RawSpans:     len(raw),
				CleanedSpans: len(cleaned),
				Options:      opts,
				Raw:          diarization.Summarize(raw),
				Cleaned:      diarization.Summarize(cleaned),
			}
			set := timeline.NewIntervalSet(cleaned)
			rep.Speakers = set.Labels()
			if extent, ok := set.Span(); ok {
				rep.Extent = &extent
			}
			if wantJSON(cmd, jsonOut) {
				return writeJSON(cmd, rep)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d spans, %d after cleaning (min_duration %s, max_merge_gap %s)\n",
				diarizationPath, rep.RawSpans, rep.CleanedSpans, formatSeconds(opts.MinDuration), formatSeconds(opts.MaxMergeGap))
			if rep.Extent != nil {
				fmt.Fprintf(out, "Speech from %s to %s: %s\n", report.Clock(rep.Extent.Start), report.Clock(rep.Extent.End), strings.Join(rep.Speakers, ", "))
			}
			fmt.Fprintln(out, summaryTable("Raw", rep.Raw))
			fmt.Fprintln(out, summaryTable("Cleaned", rep.Cleaned))
			return nil
		},
	}

	cmd.Flags().StringVarP(&diarizationPath, "diarization", "d", "", "Diarization result (.rttm, .json, or .yaml)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print JSON instead of tables")
	cmd.Flags().BoolVar(&rttmOut, "rttm", false, "Print the cleaned spans as RTTM")
	_ = cmd.MarkFlagRequired("diarization")
	return cmd
}

func summaryTable(title string, summaries []diarization.SpeakerSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Speaker,
			formatSeconds(s.TotalDuration),
			strconv.Itoa(s.NumSegments),
			formatSeconds(s.AvgSegmentDuration),
			strconv.FormatFloat(s.Percentage, 'f', 1, 64) + "%",
		})
	}
	return renderTable(title, []column{
		{Header: "Speaker"},
		{Header: "Speech (s)", Align: alignRight},
		{Header: "Spans", Align: alignRight},
		{Header: "Avg (s)", Align: alignRight},
		{Header: "Share", Align: alignRight},
	}, rows)
}
