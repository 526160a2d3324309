package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"speakerline/internal/pipeline"
	"speakerline/internal/qa"
	"speakerline/internal/report"
	"speakerline/internal/services/whisperx"
	"speakerline/internal/snapshot"
)

func newQACommand(ctx *commandContext) *cobra.Command {
	var snapshotPath string
	var transcriptPath string
	var videoName string
	var questionsPath string
	var outPath string
	var duration float64
	var noMarkdown bool

	cmd := &cobra.Command{
		Use:   "qa",
		Short: "Match questions to equal time windows of a transcript",
		Long: "Match questions to equal time windows of a merged transcript snapshot.\n\n" +
			"With --transcript the WhisperX JSON or SRT file is used as is and the\n" +
			"answers carry no speaker attribution.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			questions, err := qa.LoadQuestions(questionsPath)
			if err != nil {
				return err
			}
			var result snapshot.QA
			if transcriptPath != "" {
				raw, err := whisperx.Load(transcriptPath)
				if err != nil {
					return err
				}
				name := pipeline.Job{VideoName: videoName, TranscriptPath: transcriptPath}.Name()
				result, err = p.MatchText(cmd.Context(), name, raw, questions, filepath.Base(questionsPath), duration)
				if err != nil {
					return err
				}
			} else {
				transcript, err := snapshot.ReadTranscript(snapshotPath)
				if err != nil {
					return err
				}
				result, err = p.Match(cmd.Context(), transcript, questions, filepath.Base(questionsPath), duration)
				if err != nil {
					return err
				}
			}

			opts := snapshot.WriteOptions{Pretty: cfg.Output.Pretty}
			target := strings.TrimSpace(outPath)
			if target == stdoutTarget {
				data, err := snapshot.Encode(result, opts)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if target == "" {
				target = p.SnapshotPath(cfg.Paths.OutputDir, result.Metadata.VideoName, pipeline.QASuffix)
			}
			if err := snapshot.Write(target, result, opts); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", target)
			if !noMarkdown {
				mdPath := markdownPath(target)
				if err := os.WriteFile(mdPath, []byte(report.QAMarkdown(result)), 0o644); err != nil {
					return fmt.Errorf("write markdown report: %w", err)
				}
				fmt.Fprintf(out, "Wrote %s\n", mdPath)
			}
			fmt.Fprintf(out, "%d questions, %.2fs per window\n", result.Metadata.TotalQuestions, result.Metadata.AvgSegmentDuration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "Transcript snapshot produced by merge")
	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Unmerged WhisperX JSON or SRT transcript")
	cmd.Flags().StringVar(&videoName, "video-name", "", "Video name for --transcript (defaults to the file stem)")
	cmd.Flags().StringVarP(&questionsPath, "questions", "q", qa.DefaultQuestionsSource, "Question list, one per line")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "QA snapshot destination (\"-\" for stdout)")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Timeline length in seconds (defaults to the transcript duration)")
	cmd.Flags().BoolVar(&noMarkdown, "no-markdown", false, "Skip the Markdown report")
	cmd.MarkFlagsOneRequired("snapshot", "transcript")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "transcript")
	return cmd
}

// markdownPath swaps a snapshot's .json or .json.gz suffix for .md.
func markdownPath(snapshotPath string) string {
	trimmed := strings.TrimSuffix(snapshotPath, ".gz")
	trimmed = strings.TrimSuffix(trimmed, filepath.Ext(trimmed))
	return trimmed + report.FormatMarkdown.Extension()
}
