package cli

import (
	"github.com/spf13/cobra"

	"github.com/gzhole/web3threat/internal/compare"
	"github.com/gzhole/web3threat/internal/logger"
)

func newDiffCmd(env *toolEnv) *cobra.Command {
	var (
		section      string
		ignoreCase   bool
		contextLines int
		noColor      bool
		noHeader     bool
	)

	cmd := &cobra.Command{
		Use:   "diff <profile-a> <profile-b>",
		Short: "Show a unified diff between two threat model profiles",
		Long: `Render two profiles (optionally a single section of each) and print a
unified diff of their text. Identical profiles print a notice instead.

Examples:
  threatmodel-tools diff aztec zama
  threatmodel-tools diff aztec soundness -s mitigations -C 1
  threatmodel-tools diff zama zama --ignore-case`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("context-lines") {
				contextLines = env.cfg.Diff.ContextLines
			}
			if contextLines < 0 {
				return usageErrorf("--context-lines must not be negative, got %d", contextLines)
			}

			src, err := env.source()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := env.cfg.Diff.Color && !noColor && logger.IsTerminal(out)

			return compare.Run(cmd.Context(), src, args[0], args[1], compare.Options{
				Section:      section,
				IgnoreCase:   ignoreCase,
				ContextLines: contextLines,
				Color:        color,
				NoHeader:     noHeader,
			}, out)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Compare a single section (overview, assets, adversaries, attacks, mitigations)")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Lower-case both sides before comparing")
	cmd.Flags().IntVarP(&contextLines, "context-lines", "C", 3, "Number of context lines in the diff")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors in the diff output")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Hide the ---/+++ file header lines")
	return cmd
}
