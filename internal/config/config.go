// Package config contains the loader and strongly typed model for deploy.yaml
// and the immutable per-invocation configuration derived from it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corporate-website/deployctl/internal/params"
)

// Environment is the deployment target environment.
type Environment string

const (
	// EnvDev is the development environment.
	EnvDev Environment = "dev"
	// EnvProd is the production environment.
	EnvProd Environment = "prod"
)

// ParseEnvironment validates a raw environment value against the supported set.
func ParseEnvironment(value string) (Environment, error) {
	switch Environment(value) {
	case EnvDev, EnvProd:
		return Environment(value), nil
	case "":
		return "", errors.New("environment is required; must be 'dev' or 'prod'")
	default:
		return "", fmt.Errorf("environment must be 'dev' or 'prod', got %q", value)
	}
}

const (
	defaultProject       = "corporate-website"
	defaultLocation      = "eastus"
	defaultTemplateFile  = "infra/main.bicep"
	defaultParametersDir = "infra/parameters"
)

// Settings represents the optional deploy.yaml project settings file.
type Settings struct {
	// Project is the short project name used in derived resource names and tags.
	Project string `yaml:"project,omitempty"`
	// Location is the default Azure region for resource-group creation.
	Location string `yaml:"location,omitempty"`
	// EnvFiles lists .env files whose values become template parameter overrides.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Infra locates the orchestration template and its per-environment parameter files.
	Infra InfraSettings `yaml:"infra,omitempty"`
	// Parameters contains additional template parameter overrides.
	Parameters map[string]string `yaml:"parameters,omitempty"`
	// Tags contains extra tags applied when a resource group is created.
	Tags map[string]string `yaml:"tags,omitempty"`
}

// InfraSettings describes where the deployable infrastructure definition lives.
type InfraSettings struct {
	// TemplateFile is the path to the root orchestration template.
	TemplateFile string `yaml:"templateFile,omitempty"`
	// ParametersDir is the directory holding <env>.parameters.json files.
	ParametersDir string `yaml:"parametersDir,omitempty"`
}

// DefaultSettings returns the built-in settings used when no deploy.yaml exists.
func DefaultSettings() *Settings {
	return &Settings{
		Project:  defaultProject,
		Location: defaultLocation,
		Infra: InfraSettings{
			TemplateFile:  defaultTemplateFile,
			ParametersDir: defaultParametersDir,
		},
	}
}

// LoadSettings reads deploy.yaml from path. A missing file is not an error;
// built-in defaults are returned instead. Empty fields fall back to defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file %q: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings file %q: %w", path, err)
	}

	if s.Project == "" {
		s.Project = defaultProject
	}
	if s.Location == "" {
		s.Location = defaultLocation
	}
	if s.Infra.TemplateFile == "" {
		s.Infra.TemplateFile = defaultTemplateFile
	}
	if s.Infra.ParametersDir == "" {
		s.Infra.ParametersDir = defaultParametersDir
	}

	return &s, nil
}

// Config is the immutable configuration for a single deployment invocation.
type Config struct {
	// Project is the short project name.
	Project string
	// Environment is the validated target environment.
	Environment Environment
	// Location is the Azure region used when the resource group is created.
	Location string
	// ResourceGroup is the target resource group name.
	ResourceGroup string
	// TemplateFile is the path to the root orchestration template.
	TemplateFile string
	// ParametersFile is the environment-specific parameter file path.
	ParametersFile string
	// DeploymentName uniquely labels this validate/apply operation.
	DeploymentName string
	// ValidateOnly stops the workflow after template validation.
	ValidateOnly bool
	// Force suppresses the interactive confirmation prompt.
	Force bool
	// Parameters holds merged template parameter overrides.
	Parameters params.Vars
	// Tags holds extra tags applied on resource-group creation.
	Tags map[string]string
}

// ResolveOptions carries the raw invocation inputs into Resolve.
type ResolveOptions struct {
	Environment   string
	Location      string
	ResourceGroup string
	ValidateOnly  bool
	Force         bool
	InlineVars    params.Vars
	VarFiles      []string
	// Now overrides the clock for deterministic deployment names in tests.
	Now time.Time
}

// Resolve validates the invocation inputs against the settings and builds the
// immutable Config for this run. Precedence for parameter overrides is
// settings file, then envFiles, then var files, then inline vars.
func Resolve(settings *Settings, opts ResolveOptions) (Config, error) {
	if settings == nil {
		settings = DefaultSettings()
	}

	env, err := ParseEnvironment(opts.Environment)
	if err != nil {
		return Config{}, err
	}

	location := opts.Location
	if location == "" {
		location = settings.Location
	}

	group := opts.ResourceGroup
	if group == "" {
		group = fmt.Sprintf("rg-%s-%s", settings.Project, env)
	}

	fileVars, err := params.LoadFiles(".", settings.EnvFiles)
	if err != nil {
		return Config{}, err
	}

	var extraVars params.Vars
	for _, vf := range opts.VarFiles {
		if vf == "" {
			continue
		}
		vars, err := params.LoadFile(vf)
		if err != nil {
			return Config{}, fmt.Errorf("load var file %q: %w", vf, err)
		}
		extraVars = params.Merge(extraVars, vars)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	return Config{
		Project:        settings.Project,
		Environment:    env,
		Location:       location,
		ResourceGroup:  group,
		TemplateFile:   settings.Infra.TemplateFile,
		ParametersFile: filepath.Join(settings.Infra.ParametersDir, fmt.Sprintf("%s.parameters.json", env)),
		DeploymentName: DeploymentName(settings.Project, env, now),
		ValidateOnly:   opts.ValidateOnly,
		Force:          opts.Force,
		Parameters:     params.Merge(settings.Parameters, fileVars, extraVars, opts.InlineVars),
		Tags:           settings.Tags,
	}, nil
}

// DeploymentName derives the unique deployment identifier for one invocation.
// Granularity is one second; concurrent invocations within the same second
// would collide, which matches the historical behavior of the deploy scripts.
func DeploymentName(project string, env Environment, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", project, env, now.UTC().Format("20060102-150405"))
}
