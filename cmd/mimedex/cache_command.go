package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mimedex/internal/catalog"
	"mimedex/internal/loader"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Snapshot cache maintenance",
	}

	cacheCmd.AddCommand(newCacheInfoCommand(ctx))
	cacheCmd.AddCommand(newCacheWarmCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe the snapshot cache state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := ctx.cacheValue()
			if cache == nil {
				if jsonOutput {
					return writeJSON(cmd, map[string]bool{"enabled": false})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Snapshot cache is disabled")
				return nil
			}

			info := cache.Stat()
			if jsonOutput {
				return writeJSON(cmd, info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:        %s\n", info.Path)
			fmt.Fprintf(out, "Exists:      %s\n", yesNo(info.Exists))
			if !info.Exists {
				return nil
			}
			fmt.Fprintf(out, "Valid:       %s\n", yesNo(info.Valid))
			fmt.Fprintf(out, "Fingerprint: %s\n", info.Fingerprint)
			fmt.Fprintf(out, "Created:     %s\n", info.CreatedAt.UTC().Format(time.RFC3339))
			fmt.Fprintf(out, "Types:       %d\n", info.Count)
			fmt.Fprintf(out, "Size:        %d bytes\n", info.SizeBytes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func newCacheWarmCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Rebuild the snapshot from the configured data source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := ctx.cacheValue()
			if cache == nil {
				return fmt.Errorf("snapshot cache is disabled; enable it in the config or unset MIMEDEX_CACHE")
			}
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear stale snapshot: %w", err)
			}

			// A fresh catalog bypasses any registry this process already
			// populated, so the snapshot reflects the data source.
			cat := catalog.New(loader.FromConfig(cfg), cache, ctx.ensureLogger())
			if err := cat.EnsurePopulated(cmd.Context()); err != nil {
				return err
			}

			info := cache.Stat()
			if !info.Exists {
				return fmt.Errorf("snapshot was not written to %s", cache.Path())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote snapshot with %d types to %s\n", info.Count, info.Path)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the cached snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := ctx.cacheValue()
			if cache == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Snapshot cache is disabled; nothing to clear")
				return nil
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed snapshot at %s\n", cache.Path())
			return nil
		},
	}
}
