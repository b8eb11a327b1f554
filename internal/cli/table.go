package cli

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/gzhole/web3threat/internal/export"
	"github.com/gzhole/web3threat/internal/source"
)

func newTableCmd(env *toolEnv) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the profile list as a Markdown table",
		Long: `Build a two-column Markdown table (Profile, Description) with one row per
profile. The description repeats the key and is meant to be edited by hand.

Exit codes: 1 app not found, 2 listing failed, 3 no profiles, 4 write failed.

Examples:
  threatmodel-tools table
  threatmodel-tools table -o PROFILES.md`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := env.source()
			if err != nil {
				if errors.Is(err, source.ErrAppNotFound) {
					return withCode(ExitAppNotFound, err)
				}
				return err
			}

			profiles, err := src.Profiles(cmd.Context())
			if err != nil {
				return withCode(ExitListProfilesFailed, goerr.Wrap(err, "listing profiles failed"))
			}
			if len(profiles) == 0 {
				return withCode(ExitNoProfiles, goerr.New("no profiles found in --list-profiles output"))
			}

			if err := export.WriteTable(export.MarkdownTable(profiles), output, cmd.OutOrStdout()); err != nil {
				return withCode(ExitWriteFailed, err)
			}
			if output != "" && output != "-" {
				env.logger.Info("wrote profile table", "path", output, "rows", len(profiles))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file path, or '-' for stdout")
	return cmd
}
