package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/web3threat/internal/search"
)

func newSearchCmd(env *toolEnv) *cobra.Command {
	var (
		profiles     []string
		section      string
		ignoreCase   bool
		showContext  bool
		showProfiles bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search threat model profiles for a string",
		Long: `Render each profile (optionally one section) and print the lines that
contain the query, grouped by profile. Exits non-zero when nothing matched.

Examples:
  threatmodel-tools search "side channel" -i
  threatmodel-tools search audits -p aztec -p zama
  threatmodel-tools search "differential privacy" -s mitigations --show-context`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("ignore-case") {
				ignoreCase = env.cfg.Search.IgnoreCase
			}

			src, err := env.source()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showProfiles {
				all, err := src.Profiles(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Profiles: %s\n", strings.Join(all, ", "))
			}

			matches, err := search.Run(cmd.Context(), src, search.Options{
				Query:       args[0],
				Profiles:    profiles,
				Section:     section,
				IgnoreCase:  ignoreCase,
				ShowContext: showContext,
			}, out, env.logger)
			if err != nil {
				return err
			}

			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Profile
			}
			env.logger.Debug("search finished", "query", args[0], "profiles", strings.Join(names, ", "))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&profiles, "profile", "p", nil, "Limit the search to this profile (repeatable)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Limit the search to one section (overview, assets, adversaries, attacks, mitigations)")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Case-insensitive search")
	cmd.Flags().BoolVar(&showContext, "show-context", false, "Print the full text of matching profiles instead of matching lines only")
	cmd.Flags().BoolVar(&showProfiles, "show-profiles", false, "Print the discovered profile names before searching")
	return cmd
}
