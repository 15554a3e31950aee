package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/corporate-website/deployctl/internal/azure"
	"github.com/corporate-website/deployctl/internal/config"
)

// newDoctorCommand creates the "doctor" subcommand that runs the deployment
// preconditions standalone and reports each check.
func newDoctorCommand(opts *Options) *cobra.Command {
	// Bound to a local so registering the flag default cannot clobber
	// DEPLOYCTL_ENVIRONMENT already applied to the shared options.
	var environment string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run deployment preflight checks without deploying",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			logger := LoggerFromContext(cmd.Context())

			envName := environment
			if envName == "" {
				envName = opts.Environment
			}
			if envName == "" {
				envName = string(config.EnvDev)
			}

			settings, err := config.LoadSettings(opts.SettingsPath)
			if err != nil {
				return err
			}

			cfg, err := config.Resolve(settings, config.ResolveOptions{Environment: envName})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			if err := runDoctorChecks(ctx, logger, cfg); err != nil {
				return err
			}

			logger.Info("doctor checks completed successfully", "environment", cfg.Environment)
			return nil
		},
	}

	cmd.Flags().StringVarP(&environment, "environment", "e", "", "Environment to validate (dev or prod, defaults to dev)")

	return cmd
}

// runDoctorChecks runs every deployment precondition, logging each result and
// returning an error when any check fails.
func runDoctorChecks(ctx context.Context, logger *slog.Logger, cfg config.Config) error {
	var fatalErrs []error

	if _, err := exec.LookPath(azure.CLIName); err != nil {
		logger.Error("doctor check failed: az CLI not found in PATH", "error", err)
		fatalErrs = append(fatalErrs, err)
	} else {
		logger.Info("doctor check ok", "tool", azure.CLIName)

		eng := azure.NewClient(logger)
		if account, err := eng.WhoAmI(ctx); err != nil {
			logger.Error("doctor check failed: not authenticated with Azure", "error", err)
			fatalErrs = append(fatalErrs, err)
		} else {
			logger.Info("doctor check ok", "account", account)
		}
	}

	if _, err := os.Stat(cfg.TemplateFile); err != nil {
		logger.Error("doctor check failed: orchestration template missing", "path", cfg.TemplateFile, "error", err)
		fatalErrs = append(fatalErrs, err)
	} else {
		logger.Info("doctor check ok", "template", cfg.TemplateFile)
	}

	if _, err := os.Stat(cfg.ParametersFile); err != nil {
		logger.Error("doctor check failed: parameter file missing", "path", cfg.ParametersFile, "environment", cfg.Environment, "error", err)
		fatalErrs = append(fatalErrs, err)
	} else {
		logger.Info("doctor check ok", "parameters", cfg.ParametersFile)
	}

	if len(fatalErrs) > 0 {
		return fmt.Errorf("doctor found %d fatal issue(s); see log for details", len(fatalErrs))
	}

	return nil
}
