package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"mimedex/internal/mediatype"
	"mimedex/internal/registry"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var (
		completeOnly   bool
		registeredOnly bool
		useRegexp      bool
		jsonOutput     bool
	)

	cmd := &cobra.Command{
		Use:         "lookup <content-type>...",
		Short:       "Look up media types by content type identifier",
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

			var opts []registry.LookupOption
			if completeOnly {
				opts = append(opts, registry.Complete())
			}
			if registeredOnly {
				opts = append(opts, registry.Registered())
			}

			var matches []*mediatype.Type
			seen := make(map[*mediatype.Type]struct{})
			for _, arg := range args {
				var found []*mediatype.Type
				if useRegexp {
					re, err := regexp.Compile(arg)
					if err != nil {
						return fmt.Errorf("compile pattern %q: %w", arg, err)
					}
					found = reg.Match(re, opts...)
				} else {
					found = reg.Lookup(arg, opts...)
				}
				for _, t := range found {
					if _, dup := seen[t]; dup {
						continue
					}
					seen[t] = struct{}{}
					matches = append(matches, t)
				}
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

	cmd.Flags().BoolVar(&completeOnly, "complete", false, "Only types with known file extensions")
	cmd.Flags().BoolVar(&registeredOnly, "registered", false, "Only IANA-registered types")
	cmd.Flags().BoolVarP(&useRegexp, "regexp", "e", false, "Treat arguments as regular expressions over simplified keys")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
