package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"speakerline/internal/pipeline"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every job listed in a TOML manifest",
		Long: "Process every job listed in a TOML manifest.\n\n" +
			"Each [[jobs]] table accepts video_name, transcript, diarization, questions,\n" +
			"output_dir, language, and duration. Relative paths resolve against the\n" +
			"manifest's directory. Jobs run concurrently up to pipeline.concurrency.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			jobs, err := pipeline.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			if err := requirePreflight(cfg, jobs...); err != nil {
				return err
			}

			results, err := p.RunBatch(cmd.Context(), jobs)
			if wantJSON(cmd, jsonOut) {
				if writeErr := writeJSON(cmd, results); writeErr != nil {
					return writeErr
				}
				return err
			}

			rows := make([][]string, 0, len(results))
			for i, result := range results {
				meta := result.Transcript.Metadata
				status := "ok"
				if result.RunID == "" || len(result.Outputs) == 0 {
					status = "not finished"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					jobs[i].Name(),
					strconv.Itoa(meta.NumSegments),
					strconv.Itoa(meta.NumSpeakers),
					strconv.Itoa(len(result.Outputs)),
					status,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable("Batch", []column{
				{Header: "#", Align: alignRight},
				{Header: "Video", Width: 40},
				{Header: "Segments", Align: alignRight},
				{Header: "Speakers", Align: alignRight},
				{Header: "Files", Align: alignRight},
				{Header: "Status"},
			}, rows))
			return err
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "jobs.toml", "Job manifest")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	return cmd
}
