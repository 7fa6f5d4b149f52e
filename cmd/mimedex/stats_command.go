package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "stats",
		Short:       "Show registry statistics",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"usesCatalog": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.ensureCatalog(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := cat.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total types:      %d\n", stats.Total)
			fmt.Fprintf(out, "IANA registered:  %d\n", stats.Registered)
			fmt.Fprintf(out, "Obsolete:         %d\n", stats.Obsolete)
			fmt.Fprintf(out, "With extensions:  %d\n", stats.Complete)
			fmt.Fprintf(out, "Extension keys:   %d\n", stats.Extensions)
			if cat.FromCache() {
				fmt.Fprintln(out, "Populated from:   snapshot cache")
			}

			rows := make([][]string, 0, len(stats.ByMediaType))
			for _, media := range stats.MediaTypes() {
				rows = append(rows, []string{media, strconv.Itoa(stats.ByMediaType[media])})
			}
			fmt.Fprintln(out, renderTable([]string{"Media Type", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
