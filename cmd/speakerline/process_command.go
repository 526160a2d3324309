package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"speakerline/internal/config"
	"speakerline/internal/pipeline"
	"speakerline/internal/preflight"
	"speakerline/internal/services"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var job pipeline.Job
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Merge, match questions, and write every configured output for one recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			if err := requirePreflight(cfg, job); err != nil {
				return err
			}
			result, err := p.Process(cmd.Context(), job)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", result.RunID)
			for _, path := range result.Outputs {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	addJobFlags(cmd, &job)
	cmd.Flags().StringVarP(&job.QuestionsPath, "questions", "q", "", "Question list, one per line")
	cmd.Flags().Float64Var(&job.Duration, "duration", 0, "Timeline length in seconds for question windows")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run summary as JSON")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("diarization")
	return cmd
}

// requirePreflight fails when a job's inputs or output directory are unusable.
func requirePreflight(cfg *config.Config, jobs ...pipeline.Job) error {
	var failures []string
	for _, job := range jobs {
		checkCfg := *cfg
		if job.OutputDir != "" {
			checkCfg.Paths.OutputDir = job.OutputDir
		}
		results := preflight.RunAll(&checkCfg, preflight.Inputs{
			TranscriptPath:  job.TranscriptPath,
			DiarizationPath: job.DiarizationPath,
			QuestionsPath:   job.QuestionsPath,
		})
		failures = append(failures, preflight.FailureDetails(results)...)
	}
	if len(failures) == 0 {
		return nil
	}
	marker := services.ErrInvalidArgument
	for _, failure := range failures {
		if strings.Contains(failure, "does not exist") {
			marker = services.ErrNotFound
			break
		}
	}
	return services.Wrap(marker, "preflight", "check", strings.Join(failures, "; "), nil)
}
