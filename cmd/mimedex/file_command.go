package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mimedex/internal/mediatype"
)

func newFileCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		firstOnly  bool
	)

	cmd := &cobra.Command{
		Use:         "file <filename>...",
		Short:       "Look up media types by file name or extension",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"usesCatalog": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.ensureCatalog(cmd.Context())
			if err != nil {
				return err
			}
			reg, err := cat.Registry(cmd.Context())
			if err != nil {
				return err
			}

			matches := reg.ForFilename(args...)
			if firstOnly && len(matches) > 1 {
				matches = matches[:1]
			}

			if jsonOutput {
				out := make([]mediatype.Data, 0, len(matches))
				for _, t := range matches {
					out = append(out, t.Data())
				}
				return writeJSON(cmd, out)
			}
			if len(matches) == 0 {
				return fmt.Errorf("no media types match %v", args)
			}
			renderTypes(cmd.OutOrStdout(), matches)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&firstOnly, "first", false, "Print only the highest-priority match")
	return cmd
}
