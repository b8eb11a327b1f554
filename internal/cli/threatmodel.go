package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/web3threat/internal/threatmodel"
)

const threatModelProg = "web3-threatmodel"

// NewThreatModelCommand builds the web3-threatmodel root command.
func NewThreatModelCommand() *cobra.Command {
	var (
		profile      string
		section      string
		listProfiles bool
		showVersion  bool
	)

	catalog := threatmodel.Default()

	cmd := &cobra.Command{
		Use:   threatModelProg,
		Short: "Print high level threat models for Web3 privacy projects",
		Long: `Generate high level threat models for Web3 privacy projects inspired by
ecosystems such as Aztec, Zama, and soundness-focused research labs.

Examples:
  web3-threatmodel --list-profiles
  web3-threatmodel --profile aztec
  web3-threatmodel --profile zama --section assets`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profile != "" && !catalog.Has(profile) {
				return usageErrorf("argument --profile: invalid choice: %q (choose from %s)",
					profile, strings.Join(catalog.Keys(), ", "))
			}
			var sec threatmodel.Section
			if section != "" {
				var err error
				if sec, err = threatmodel.ParseSection(section); err != nil {
					return usageErrorf("argument --section: invalid choice: %q (choose from %s)",
						section, strings.Join(threatmodel.SectionNames(), ", "))
				}
			}

			out := cmd.OutOrStdout()

			if listProfiles {
				return threatmodel.ListProfiles(out, catalog)
			}

			if profile == "" {
				return printThreatModelBanner(out, catalog)
			}

			m, err := catalog.Get(profile)
			if err != nil {
				return err
			}

			if showVersion {
				_, err := fmt.Fprintf(out, "%s version %s\n", threatModelProg, Version)
				return err
			}

			if sec != "" {
				return threatmodel.RenderProfile(out, m, sec)
			}
			return threatmodel.RenderFull(out, m)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Select which profile to use ("+strings.Join(catalog.Keys(), ", ")+")")
	cmd.Flags().StringVar(&section, "section", "", "Print only a single section instead of the full threat model ("+strings.Join(threatmodel.SectionNames(), ", ")+")")
	cmd.Flags().BoolVar(&listProfiles, "list-profiles", false, "List available profiles and exit")
	cmd.Flags().BoolVar(&showVersion, "version", false, "Print version information and exit (requires --profile)")

	_ = cmd.RegisterFlagCompletionFunc("profile", fixedCompletion(catalog.Keys()))
	_ = cmd.RegisterFlagCompletionFunc("section", fixedCompletion(threatmodel.SectionNames()))

	return cmd
}

func printThreatModelBanner(w io.Writer, catalog *threatmodel.Catalog) error {
	if _, err := fmt.Fprintf(w, "%s - Web3 privacy threat model helper\n\n", threatModelProg); err != nil {
		return err
	}
	if err := threatmodel.ListProfiles(w, catalog); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("Examples:\n")
	for _, ex := range []string{
		"--profile aztec",
		"--profile zama --section assets",
		"--profile soundness --section mitigations",
		"--profile soundness",
	} {
		fmt.Fprintf(&sb, "  %s %s\n", threatModelProg, ex)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// ExecuteThreatModel runs web3-threatmodel with the process arguments.
func ExecuteThreatModel() error {
	return execute(NewThreatModelCommand(), nil, os.Stderr)
}
