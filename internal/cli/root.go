// Package cli defines the command-line interface for deployctl.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/corporate-website/deployctl/internal/logging"
)

const (
	// defaultSettingsPath is the default path to the project settings file.
	defaultSettingsPath = "deploy.yaml"
)

// Options stores CLI options shared between commands.
type Options struct {
	SettingsPath  string
	Environment   string
	Location      string
	ResourceGroup string
	ValidateOnly  bool
	Force         bool
	LogLevelName  string
	LogLevel      logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		SettingsPath: defaultSettingsPath,
		LogLevelName: "info",
		LogLevel:     logging.LevelInfo,
	}

	var defaults baseEnv
	if err := parseEnv(&defaults); err != nil {
		return err
	}
	applyEnvDefaults(rootOpts, defaults)

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with flags and subcommands.
// The root command itself runs the deployment workflow; doctor and costs are
// standalone helpers around the same configuration.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployctl",
		Short: "deployctl validates and deploys the corporate website Azure infrastructure",
		Long: "deployctl is a thin wrapper around the Azure CLI that validates the corporate\n" +
			"website's Bicep template and deploys it into an environment-specific resource group.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(opts.LogLevelName)
			if level != opts.LogLevel {
				// Keep the injected logger unless the requested level differs.
				opts.LogLevel = level
				logger = logging.NewLogger(os.Stderr, level)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeDeploy(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.SettingsPath, "config", "c", opts.SettingsPath, "Path to deploy.yaml settings file")
	cmd.PersistentFlags().StringVar(&opts.LogLevelName, "log-level", opts.LogLevelName, "Log level (debug, info, warn, error)")

	cmd.Flags().StringVarP(&opts.Environment, "environment", "e", opts.Environment, "Target environment (dev or prod)")
	cmd.Flags().StringVarP(&opts.Location, "location", "l", opts.Location, "Azure region for resource-group creation (defaults to deploy.yaml location or eastus)")
	cmd.Flags().StringVarP(&opts.ResourceGroup, "resource-group", "g", opts.ResourceGroup, "Resource group name (defaults to rg-<project>-<environment>)")
	cmd.Flags().BoolVar(&opts.ValidateOnly, "validate-only", false, "Validate the template and exit without deploying")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Skip the confirmation prompt")
	cmd.Flags().String("vars", "", "Additional template parameters in k=v,k2=v2 format")
	cmd.Flags().String("var-file", "", "Path to .env-style file with additional template parameters")

	cmd.AddCommand(
		newDoctorCommand(opts),
		newCostsCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
