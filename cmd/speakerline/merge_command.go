package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"speakerline/internal/pipeline"
	"speakerline/internal/snapshot"
)

// stdoutTarget writes a snapshot to stdout instead of a file.
const stdoutTarget = "-"

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var job pipeline.Job
	var outPath string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Align a transcript with a diarization into a speaker timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			result, err := p.Run(cmd.Context(), job)
			if err != nil {
				return err
			}

			opts := snapshot.WriteOptions{Pretty: cfg.Output.Pretty}
			target := strings.TrimSpace(outPath)
			if target == stdoutTarget {
				data, err := snapshot.Encode(result.Transcript, opts)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if target == "" {
				dir := job.OutputDir
				if dir == "" {
					dir = cfg.Paths.OutputDir
				}
				target = p.SnapshotPath(dir, result.Transcript.Metadata.VideoName, pipeline.TranscriptSuffix)
			}
			if err := snapshot.Write(target, result.Transcript, opts); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			meta := result.Transcript.Metadata
			fmt.Fprintf(out, "Wrote %s\n", target)
			fmt.Fprintf(out, "%d segments, %d speakers, %.2fs, language %s\n", meta.NumSegments, meta.NumSpeakers, meta.DurationSeconds, meta.Language)
			if summary := result.Stats.Alignment; summary.Degraded() {
				fmt.Fprintf(out, "Warning: %d segment(s) matched by nearest speaker, %d left UNKNOWN\n", summary.Nearest, summary.Unknown)
			}
			return nil
		},
	}

	addJobFlags(cmd, &job)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Snapshot destination (\"-\" for stdout; .gz compresses)")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("diarization")
	return cmd
}

func addJobFlags(cmd *cobra.Command, job *pipeline.Job) {
	cmd.Flags().StringVarP(&job.TranscriptPath, "transcript", "t", "", "Transcription result (.json or .srt)")
	cmd.Flags().StringVarP(&job.DiarizationPath, "diarization", "d", "", "Diarization result (.rttm, .json, or .yaml)")
	cmd.Flags().StringVar(&job.VideoName, "video-name", "", "Recording name (defaults to the transcript file name)")
	cmd.Flags().StringVar(&job.Language, "language", "", "Override the transcript language")
	cmd.Flags().StringVar(&job.OutputDir, "output-dir", "", "Output directory (defaults to paths.output_dir)")
}
