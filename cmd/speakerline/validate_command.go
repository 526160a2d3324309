package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"speakerline/internal/pipeline"
	"speakerline/internal/services"
	"speakerline/internal/snapshot"
)

func newValidateCommand() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:         "validate <snapshot>...",
		Short:       "Check snapshot files against their JSON Schema",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				kind, err := snapshotKind(kindName, path)
				if err != nil {
					return err
				}
				data, err := snapshot.ReadRaw(path)
				if err != nil {
					return err
				}
				issues, err := snapshot.Validate(kind, data)
				if err != nil {
					return err
				}
				if len(issues) == 0 {
					fmt.Fprintf(out, "%s: valid %s snapshot\n", path, kind)
					continue
				}
				invalid++
				fmt.Fprintf(out, "%s: %d issue(s)\n", path, len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s\n", issue)
				}
			}
			if invalid > 0 {
				return services.Wrap(services.ErrValidation, "validate", "schema", fmt.Sprintf("%d of %d snapshot(s) invalid", invalid, len(args)), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "Snapshot kind (transcript or qa); inferred from the file name when empty")
	return cmd
}

// snapshotKind resolves an explicit kind or infers one from a file name
// written by the pipeline.
func snapshotKind(explicit, path string) (snapshot.Kind, error) {
	if strings.TrimSpace(explicit) != "" {
		return snapshot.ParseKind(explicit)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".gz")
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if strings.HasSuffix(name, pipeline.QASuffix) {
		return snapshot.KindQA, nil
	}
	return snapshot.KindTranscript, nil
}
