package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/corporate-website/deployctl/internal/azure"
	"github.com/corporate-website/deployctl/internal/config"
	"github.com/corporate-website/deployctl/internal/estimate"
	"github.com/corporate-website/deployctl/internal/params"
)

// deployTimeout bounds a full validate-and-deploy run, including the external
// engine's own polling.
const deployTimeout = 45 * time.Minute

// executeDeploy resolves the invocation configuration and runs the deployment
// workflow against the real Azure CLI.
func executeDeploy(cmd *cobra.Command, opts *Options) error {
	// Flags parsed fine at this point; later failures should not dump usage.
	cmd.SilenceUsage = true
	logger := LoggerFromContext(cmd.Context())

	inlineVars, err := params.ParseInline(cmd.Flag("vars").Value.String())
	if err != nil {
		return err
	}

	varFile := cmd.Flag("var-file").Value.String()
	var varFiles []string
	if varFile != "" {
		varFiles = append(varFiles, varFile)
	}

	settings, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(settings, config.ResolveOptions{
		Environment:   opts.Environment,
		Location:      opts.Location,
		ResourceGroup: opts.ResourceGroup,
		ValidateOnly:  opts.ValidateOnly,
		Force:         opts.Force,
		InlineVars:    inlineVars,
		VarFiles:      varFiles,
	})
	if err != nil {
		return err
	}

	if _, err := exec.LookPath(azure.CLIName); err != nil {
		return fmt.Errorf("az CLI not found in PATH: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), deployTimeout)
	defer cancel()

	return runDeploy(ctx, logger, cfg, azure.NewClient(logger), os.Stdin, os.Stdout)
}

// runDeploy drives the linear deployment workflow: preconditions, cost
// estimate, confirmation, resource-group ensure, validation and, unless
// validate-only is set, the deployment itself plus output display.
func runDeploy(ctx context.Context, logger *slog.Logger, cfg config.Config, eng azure.Engine, confirmIn io.Reader, out io.Writer) error {
	account, err := eng.WhoAmI(ctx)
	if err != nil {
		return err
	}
	logger.Info("authenticated with Azure", "account", account)

	if err := checkDeploymentFiles(cfg); err != nil {
		return err
	}

	estimate.Render(out, cfg.Environment, estimate.ForEnvironment(cfg.Environment))

	if !cfg.Force && !cfg.ValidateOnly {
		ok, err := confirmDeployment(confirmIn, out, cfg)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("deployment cancelled by operator", "environment", cfg.Environment)
			return nil
		}
	}

	if err := ensureResourceGroup(ctx, logger, cfg, eng, account); err != nil {
		return err
	}

	d := azure.Deployment{
		ResourceGroup:  cfg.ResourceGroup,
		Name:           cfg.DeploymentName,
		TemplateFile:   cfg.TemplateFile,
		ParametersFile: cfg.ParametersFile,
		Environment:    string(cfg.Environment),
		Overrides:      cfg.Parameters,
	}

	logger.Info("validating template", "template", cfg.TemplateFile, "deployment", cfg.DeploymentName)
	if err := eng.ValidateTemplate(ctx, d); err != nil {
		return err
	}
	logger.Info("template validation passed", "deployment", cfg.DeploymentName)

	if cfg.ValidateOnly {
		logger.Info("Validation completed. Exiting", "deployment", cfg.DeploymentName)
		return nil
	}

	logger.Info("deploying template", "resource_group", cfg.ResourceGroup, "deployment", cfg.DeploymentName)
	if err := eng.DeployTemplate(ctx, d); err != nil {
		return err
	}

	outputs, err := eng.DeploymentOutputs(ctx, cfg.ResourceGroup, cfg.DeploymentName)
	if err != nil {
		logger.Warn("unable to fetch deployment outputs", "deployment", cfg.DeploymentName, "error", err)
	} else {
		printOutputs(out, filterOutputs(outputs))
	}

	logger.Info("Deployment completed successfully!", "environment", cfg.Environment, "resource_group", cfg.ResourceGroup)
	return nil
}

// checkDeploymentFiles verifies the template and parameter files exist before
// any deployment-engine call is made with them.
func checkDeploymentFiles(cfg config.Config) error {
	if _, err := os.Stat(cfg.TemplateFile); err != nil {
		return fmt.Errorf("orchestration template not found at %s: %w", cfg.TemplateFile, err)
	}
	if _, err := os.Stat(cfg.ParametersFile); err != nil {
		return fmt.Errorf("parameter file for environment %q not found at %s: %w", cfg.Environment, cfg.ParametersFile, err)
	}
	return nil
}

// ensureResourceGroup creates the target resource group if it does not exist.
// Repeated invocations are idempotent; an existing group is left untouched.
func ensureResourceGroup(ctx context.Context, logger *slog.Logger, cfg config.Config, eng azure.Engine, account string) error {
	exists, err := eng.ResourceGroupExists(ctx, cfg.ResourceGroup)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("resource group exists", "resource_group", cfg.ResourceGroup)
		return nil
	}

	tags := map[string]string{
		"environment": string(cfg.Environment),
		"project":     cfg.Project,
		"createdBy":   account,
		"createdAt":   time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range cfg.Tags {
		if _, reserved := tags[k]; !reserved {
			tags[k] = v
		}
	}

	logger.Info("creating resource group", "resource_group", cfg.ResourceGroup, "location", cfg.Location)
	if err := eng.CreateResourceGroup(ctx, cfg.ResourceGroup, cfg.Location, tags); err != nil {
		return err
	}
	return nil
}
