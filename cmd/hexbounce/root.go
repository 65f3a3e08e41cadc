package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-hexbounce/pkg/config"
	"github.com/opd-ai/go-hexbounce/pkg/logging"
)

// app holds state shared by all subcommands
type app struct {
	configPath string
	logLevel   string
	logger     *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "hexbounce",
		Short:         "A ball bouncing inside a rotating hexagon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout belongs to the terminal renderer and command output
			level := logging.ParseLevel(os.Getenv(logging.LevelEnvVar))
			if a.logLevel != "" {
				level = logging.ParseLevel(a.logLevel)
			}
			a.logger = logging.NewLoggerWithWriter(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (.json, .yaml or .yml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from "+logging.LevelEnvVar+")")

	root.AddCommand(newRunCmd(a), newViewCmd(a), newConfigCmd(a))
	return root
}

// loadConfig reads path (defaults when empty or missing), applies
// environment overrides and validates the result.
func (a *app) loadConfig(ctx context.Context, path string) (*config.SimulationConfig, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			a.logger.Info(ctx, "Configuration file not found, using default configuration",
				"config_path", path,
			)
		case err != nil:
			return nil, fmt.Errorf("load %s: %w", path, err)
		default:
			cfg = loaded
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
