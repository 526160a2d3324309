package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"speakerline/internal/report"
	"speakerline/internal/snapshot"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var snapshotPath string
	var kindName string
	var formatName string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a snapshot as JSON, YAML, text, Markdown, or HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			kind, err := snapshotKind(kindName, snapshotPath)
			if err != nil {
				return err
			}

			var data []byte
			switch kind {
			case snapshot.KindQA:
				q, err := snapshot.ReadQA(snapshotPath)
				if err != nil {
					return err
				}
				data, err = report.RenderQA(q, format, cfg.Output.Pretty)
				if err != nil {
					return err
				}
			default:
				t, err := snapshot.ReadTranscript(snapshotPath)
				if err != nil {
					return err
				}
				data, err = report.RenderTranscript(t, format, cfg.Output.Pretty)
				if err != nil {
					return err
				}
			}

			target := strings.TrimSpace(outPath)
			if target == "" || target == stdoutTarget {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "Transcript or QA snapshot")
	cmd.Flags().StringVar(&kindName, "kind", "", "Snapshot kind (transcript or qa); inferred from the file name when empty")
	cmd.Flags().StringVarP(&formatName, "format", "f", "markdown", "Export format (json, yaml, text, markdown, html)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file (stdout when empty)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
