// Package azure provides low-level integration with the Azure deployment
// engine via the az CLI.
package azure

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/corporate-website/deployctl/internal/logging"
)

// CLIName is the external executable every deployment operation shells out to.
const CLIName = "az"

// Deployment describes one validate or apply call against a resource group.
type Deployment struct {
	// ResourceGroup is the target resource group name.
	ResourceGroup string
	// Name is the unique deployment identifier.
	Name string
	// TemplateFile is the path to the root orchestration template.
	TemplateFile string
	// ParametersFile is the environment-specific parameter file path.
	ParametersFile string
	// Environment is passed as the "environment" template parameter override.
	Environment string
	// Overrides holds additional template parameter overrides.
	Overrides map[string]string
}

// Engine is the set of deployment-engine operations the orchestrator depends
// on. Production code binds it to a Client; tests substitute a fake.
type Engine interface {
	// WhoAmI returns the signed-in account name, or an error when the
	// operator is not authenticated. It performs no mutation.
	WhoAmI(ctx context.Context) (string, error)
	// ResourceGroupExists reports whether the named resource group exists.
	ResourceGroupExists(ctx context.Context, name string) (bool, error)
	// CreateResourceGroup creates a resource group with the given tags.
	CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error
	// ValidateTemplate runs the engine's dry-run validation for d.
	ValidateTemplate(ctx context.Context, d Deployment) error
	// DeployTemplate applies d. Only called after a successful validation.
	DeployTemplate(ctx context.Context, d Deployment) error
	// DeploymentOutputs returns the output values of a completed deployment.
	// A nil map with a nil error means the deployment produced no outputs.
	DeploymentOutputs(ctx context.Context, group, name string) (map[string]string, error)
}

// Client implements Engine by executing the az CLI.
type Client struct {
	logger *slog.Logger
}

// NewClient constructs a new Azure CLI client wrapper.
func NewClient(logger *slog.Logger) *Client {
	return &Client{logger: logger}
}

var _ Engine = (*Client)(nil)

// WhoAmI returns the signed-in account user name via "az account show".
func (c *Client) WhoAmI(ctx context.Context) (string, error) {
	out, err := c.queryAz(ctx, "account", "show", "--query", "user.name", "--output", "tsv")
	if err != nil {
		return "", fmt.Errorf("not logged in to Azure; run 'az login' first: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ResourceGroupExists reports whether the named resource group exists.
func (c *Client) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	out, err := c.queryAz(ctx, "group", "exists", "--name", name, "--output", "tsv")
	if err != nil {
		return false, fmt.Errorf("check resource group %q: %w", name, err)
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

// CreateResourceGroup creates the named resource group in the given location.
func (c *Client) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error {
	args := []string{"group", "create", "--name", name, "--location", location}
	if len(tags) > 0 {
		args = append(args, "--tags")
		args = append(args, tagArgs(tags)...)
	}
	if err := c.runAz(ctx, args...); err != nil {
		return fmt.Errorf("create resource group %q: %w", name, err)
	}
	return nil
}

// ValidateTemplate runs "az deployment group validate" for the deployment.
func (c *Client) ValidateTemplate(ctx context.Context, d Deployment) error {
	args := append([]string{"deployment", "group", "validate"}, deploymentArgs(d)...)
	if err := c.runAz(ctx, args...); err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}
	return nil
}

// DeployTemplate runs "az deployment group create" with verbose output.
func (c *Client) DeployTemplate(ctx context.Context, d Deployment) error {
	args := append([]string{"deployment", "group", "create"}, deploymentArgs(d)...)
	args = append(args, "--verbose")
	if err := c.runAz(ctx, args...); err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}
	return nil
}

// DeploymentOutputs fetches and decodes the outputs of a completed deployment.
func (c *Client) DeploymentOutputs(ctx context.Context, group, name string) (map[string]string, error) {
	out, err := c.queryAz(ctx,
		"deployment", "group", "show",
		"--resource-group", group,
		"--name", name,
		"--query", "properties.outputs",
		"--output", "json",
	)
	if err != nil {
		return nil, fmt.Errorf("fetch outputs for deployment %q: %w", name, err)
	}
	return decodeOutputs(out)
}

// deploymentArgs builds the shared argument list for validate and create calls.
func deploymentArgs(d Deployment) []string {
	args := []string{
		"--resource-group", d.ResourceGroup,
		"--name", d.Name,
		"--template-file", d.TemplateFile,
		"--parameters", "@" + d.ParametersFile,
		"--parameters", "environment=" + d.Environment,
	}
	keys := make([]string, 0, len(d.Overrides))
	for k := range d.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--parameters", k+"="+d.Overrides[k])
	}
	return args
}

// tagArgs renders a tag map as sorted k=v arguments.
func tagArgs(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+tags[k])
	}
	return out
}

// runAz executes a mutating az call, streaming its output through the logger.
func (c *Client) runAz(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, CLIName, args...)
	if c.logger != nil {
		w := logging.NewWriter(c.logger)
		cmd.Stdout = w
		cmd.Stderr = w
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("az %s failed: %w", args[0], err)
	}
	return nil
}

// queryAz executes a read-only az call and captures its stdout.
func (c *Client) queryAz(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, CLIName, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("az %s failed: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}
