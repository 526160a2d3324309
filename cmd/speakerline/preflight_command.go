package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"speakerline/internal/preflight"
	"speakerline/internal/services"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	var inputs preflight.Inputs
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check directories, inputs, and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg, inputs)

			if wantJSON(cmd, jsonOut) {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					status := "ok"
					switch {
					case !r.Passed && r.Optional:
						status = "missing (optional)"
					case !r.Passed:
						status = "FAILED"
					}
					rows = append(rows, []string{r.Name, status, r.Detail})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable("Preflight", []column{
					{Header: "Check"},
					{Header: "Status"},
					{Header: "Detail", Width: 70},
				}, rows))
			}

			if preflight.Failed(results) {
				return services.Wrap(services.ErrConfiguration, "preflight", "check",
					fmt.Sprintf("%d required check(s) failed", len(preflight.FailureDetails(results))), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputs.TranscriptPath, "transcript", "t", "", "Also check a transcription result")
	cmd.Flags().StringVarP(&inputs.DiarizationPath, "diarization", "d", "", "Also check a diarization result")
	cmd.Flags().StringVarP(&inputs.QuestionsPath, "questions", "q", "", "Also check a question list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	return cmd
}
