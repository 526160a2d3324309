package main

import (
	"github.com/spf13/cobra"

	"speakerline/internal/snapshot"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "schema <transcript|qa>",
		Short:       "Print the JSON Schema for a snapshot kind",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := snapshot.ParseKind(args[0])
			if err != nil {
				return err
			}
			data, err := snapshot.Schema(kind)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			_, err = out.Write([]byte("\n"))
			return err
		},
	}
}
