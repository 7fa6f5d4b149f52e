package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mimedex/internal/config"
	"mimedex/internal/loader"
)

func newDataCommand(ctx *commandContext) *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Data source utilities",
	}

	dataCmd.AddCommand(newDataCompileCommand(ctx))

	return dataCmd
}

func newDataCompileCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the configured data source into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outPath)
			if target == "" {
				target = cfg.Data.Database
			}
			if target == "" {
				return fmt.Errorf("no output database: pass --out or set data.database in the config")
			}
			target, err = config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			source := loader.FromConfig(cfg)
			if source.Name() == "sqlite:"+target {
				return fmt.Errorf("output %s is also the configured source; compile from a JSON directory or the embedded dataset", target)
			}

			types, err := source.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load %s: %w", source.Name(), err)
			}
			if err := loader.Compile(cmd.Context(), types, target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d types from %s into %s\n", len(types), source.Name(), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination database path (defaults to data.database)")
	return cmd
}
