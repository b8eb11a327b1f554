package cli

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/gzhole/web3threat/internal/export"
)

func newExportCmd(env *toolEnv) *cobra.Command {
	var (
		outDir       string
		format       string
		noCodeBlock  bool
		headingLevel int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every threat model profile to its own file",
		Long: `Write one file per profile into the output directory, named <profile>.md
or <profile>.txt. Markdown files put the text under a heading in a fenced
code block. A profile that fails to render is reported and skipped.

Examples:
  threatmodel-tools export
  threatmodel-tools export --out-dir docs/threats --format txt
  threatmodel-tools export --app-path ./bin/web3-threatmodel --no-code-block`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("out-dir") {
				outDir = env.cfg.Export.OutDir
			}
			if !flags.Changed("format") {
				format = env.cfg.Export.Format
			}
			if !flags.Changed("heading-level") {
				headingLevel = env.cfg.Export.HeadingLevel
			}
			codeBlock := env.cfg.Export.CodeBlock
			if flags.Changed("no-code-block") {
				codeBlock = !noCodeBlock
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}

			src, err := env.source()
			if err != nil {
				return err
			}

			res, err := export.Run(cmd.Context(), src, export.Options{
				OutDir:       outDir,
				Format:       f,
				HeadingLevel: headingLevel,
				CodeBlock:    codeBlock,
			}, cmd.OutOrStdout(), env.logger)
			if err != nil {
				if errors.Is(err, export.ErrNoProfiles) {
					return goerr.Wrap(err, "no profiles found; nothing to export")
				}
				return err
			}

			if len(res.Failed) > 0 {
				env.logger.Warn("some profiles were not exported", "failed", res.Failed, "written", len(res.Written))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "exports", "Directory to write files into")
	cmd.Flags().StringVar(&format, "format", "md", "File format: md (Markdown) or txt (plain text)")
	cmd.Flags().BoolVar(&noCodeBlock, "no-code-block", false, "Do not wrap the content in a ```text code block")
	cmd.Flags().IntVar(&headingLevel, "heading-level", 1, "Markdown heading level for the title (1-6)")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion([]string{"md", "txt"}))
	return cmd
}
