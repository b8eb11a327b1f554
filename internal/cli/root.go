package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/web3threat/internal/config"
	"github.com/gzhole/web3threat/internal/logger"
	"github.com/gzhole/web3threat/internal/source"
	"github.com/gzhole/web3threat/internal/threatmodel"
)

// Commands annotated with annotationSkipConfig run without reading the config
// file.
const annotationSkipConfig = "web3threat/skip-config"

// toolEnv is filled in by the root command before any subcommand runs.
type toolEnv struct {
	appPath    string
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// source returns the in-process catalog unless an app path was given on the
// command line or in the config file.
func (e *toolEnv) source() (source.Source, error) {
	appPath := e.appPath
	if appPath == "" {
		appPath = e.cfg.AppPath
	}
	if appPath == "" {
		return source.NewLocal(threatmodel.Default()), nil
	}

	src, err := source.NewExec(appPath, e.logger)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("using threat model app", "path", src.Path())
	return src, nil
}

// NewToolsCommand builds the threatmodel-tools root command.
func NewToolsCommand() *cobra.Command {
	env := &toolEnv{}

	cmd := &cobra.Command{
		Use:   "threatmodel-tools",
		Short: "Export, tabulate, diff and search Web3 threat model profiles",
		Long: `threatmodel-tools works on the output of web3-threatmodel. By default the
profiles are rendered in process; pass --app-path to run a web3-threatmodel
binary instead and work on what it prints.

Defaults can be set in ~/.web3threat/config.yaml.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env.logger = logger.New(cmd.ErrOrStderr(), env.verbose)
			if cmd.Annotations[annotationSkipConfig] == "true" {
				env.cfg = config.Default()
				return nil
			}

			cfg, err := config.Load(env.configPath)
			if err != nil {
				return err
			}
			env.cfg = cfg
			if cfg.Path != "" {
				env.logger.Debug("loaded config", "path", cfg.Path)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&env.appPath, "app-path", "", "Path to the web3-threatmodel binary (default: render in process)")
	cmd.PersistentFlags().StringVar(&env.configPath, "config", "", "Path to config YAML file (default: ~/.web3threat/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newExportCmd(env),
		newTableCmd(env),
		newDiffCmd(env),
		newSearchCmd(env),
		newVersionCmd(),
	)
	return cmd
}

// ExecuteTools runs threatmodel-tools with the process arguments.
func ExecuteTools(ctx context.Context) error {
	cmd := NewToolsCommand()
	cmd.SetContext(ctx)
	return execute(cmd, nil, os.Stderr)
}
