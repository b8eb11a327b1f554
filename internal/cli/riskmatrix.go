package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/web3threat/internal/logger"
	"github.com/gzhole/web3threat/internal/riskmatrix"
)

const riskMatrixProg = "risk-matrix"

// NewRiskMatrixCommand builds the risk-matrix root command.
func NewRiskMatrixCommand() *cobra.Command {
	var (
		profile      string
		listProfiles bool
		jsonOut      bool
		format       string
		colorMode    string
		showVersion  bool
	)

	catalog := riskmatrix.Default()

	cmd := &cobra.Command{
		Use:   riskMatrixProg,
		Short: "Print a qualitative risk matrix for Web3 privacy/soundness projects",
		Long: `Print a small qualitative risk matrix for Web3 privacy/soundness projects.
Designed as a companion to web3-threatmodel.

Examples:
  risk-matrix                          # aztec, human-readable
  risk-matrix --profile zama --json
  risk-matrix --profile soundness --format yaml
  risk-matrix --list-profiles`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if showVersion {
				_, err := fmt.Fprintf(out, "%s %s\n", riskMatrixProg, Version)
				return err
			}

			if err := riskmatrix.ValidateCatalog(catalog); err != nil {
				return err
			}

			if jsonOut {
				if cmd.Flags().Changed("format") && format != "json" {
					return usageErrorf("--json conflicts with --format %s", format)
				}
				format = "json"
			}

			p, err := catalog.Get(profile)
			if err != nil {
				return usageErrorf("argument --profile: invalid choice: %q (choose from %s)",
					profile, strings.Join(catalog.Keys(), ", "))
			}

			if listProfiles {
				return riskmatrix.ListProfiles(out, catalog)
			}

			switch format {
			case "json":
				return riskmatrix.RenderJSON(out, p)
			case "yaml":
				return riskmatrix.RenderYAML(out, p)
			case "text", "":
				colorize, err := resolveColor(colorMode, out)
				if err != nil {
					return err
				}
				return riskmatrix.RenderHuman(out, p, colorize)
			default:
				return usageErrorf("argument --format: invalid choice: %q (choose from text, json, yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&profile, "profile", riskmatrix.DefaultKey, "Which profile to use ("+strings.Join(catalog.Keys(), ", ")+")")
	cmd.Flags().BoolVar(&listProfiles, "list-profiles", false, "List available profiles and exit")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print JSON instead of human-readable text")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "Color likelihood and impact: auto, always or never")
	cmd.Flags().BoolVar(&showVersion, "version", false, "Show version and exit")

	_ = cmd.RegisterFlagCompletionFunc("profile", fixedCompletion(catalog.Keys()))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion([]string{"text", "json", "yaml"}))
	_ = cmd.RegisterFlagCompletionFunc("color", fixedCompletion([]string{"auto", "always", "never"}))

	return cmd
}

// resolveColor turns a --color mode into a decision for w.
func resolveColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return logger.IsTerminal(w), nil
	}
	return false, usageErrorf("argument --color: invalid choice: %q (choose from auto, always, never)", mode)
}

// ExecuteRiskMatrix runs risk-matrix with the process arguments.
func ExecuteRiskMatrix() error {
	return execute(NewRiskMatrixCommand(), nil, os.Stderr)
}
