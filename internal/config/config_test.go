package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corporate-website/deployctl/internal/params"
)

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("dev")
	require.NoError(t, err)
	require.Equal(t, EnvDev, env)

	env, err = ParseEnvironment("prod")
	require.NoError(t, err)
	require.Equal(t, EnvProd, env)
}

func TestParseEnvironment_RejectsUnknownValues(t *testing.T) {
	for _, value := range []string{"staging", "production", "Dev", "DEV", "test"} {
		_, err := ParseEnvironment(value)
		require.Error(t, err, "value %q should be rejected", value)
		require.Contains(t, err.Error(), "must be 'dev' or 'prod'")
	}
}

func TestParseEnvironment_RequiresValue(t *testing.T) {
	_, err := ParseEnvironment("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestResolve_DerivesResourceGroupName(t *testing.T) {
	for _, env := range []string{"dev", "prod"} {
		cfg, err := Resolve(DefaultSettings(), ResolveOptions{Environment: env})
		require.NoError(t, err)
		require.Equal(t, "rg-corporate-website-"+env, cfg.ResourceGroup)
	}
}

func TestResolve_ExplicitResourceGroupWins(t *testing.T) {
	cfg, err := Resolve(DefaultSettings(), ResolveOptions{
		Environment:   "dev",
		ResourceGroup: "rg-custom",
	})
	require.NoError(t, err)
	require.Equal(t, "rg-custom", cfg.ResourceGroup)
}

func TestResolve_DefaultsAndDerivedPaths(t *testing.T) {
	cfg, err := Resolve(DefaultSettings(), ResolveOptions{Environment: "dev"})
	require.NoError(t, err)

	require.Equal(t, "corporate-website", cfg.Project)
	require.Equal(t, "eastus", cfg.Location)
	require.Equal(t, "infra/main.bicep", cfg.TemplateFile)
	require.Equal(t, filepath.Join("infra", "parameters", "dev.parameters.json"), cfg.ParametersFile)
}

func TestResolve_LocationOverride(t *testing.T) {
	cfg, err := Resolve(DefaultSettings(), ResolveOptions{
		Environment: "prod",
		Location:    "westeurope",
	})
	require.NoError(t, err)
	require.Equal(t, "westeurope", cfg.Location)
}

func TestResolve_InvalidEnvironmentFailsFast(t *testing.T) {
	_, err := Resolve(DefaultSettings(), ResolveOptions{Environment: "staging"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be 'dev' or 'prod'")
}

func TestResolve_ParameterPrecedence(t *testing.T) {
	settings := DefaultSettings()
	settings.Parameters = map[string]string{"sku": "B1", "region": "eastus"}

	varFile := filepath.Join(t.TempDir(), "extra.env")
	require.NoError(t, os.WriteFile(varFile, []byte("sku=S1\nreplicas=2\n"), 0o644))

	cfg, err := Resolve(settings, ResolveOptions{
		Environment: "dev",
		VarFiles:    []string{varFile},
		InlineVars:  params.Vars{"replicas": "3"},
	})
	require.NoError(t, err)

	require.Equal(t, "S1", cfg.Parameters["sku"], "var file should override settings")
	require.Equal(t, "3", cfg.Parameters["replicas"], "inline vars should override var files")
	require.Equal(t, "eastus", cfg.Parameters["region"])
}

func TestDeploymentName_SecondGranularity(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 30, 45, 0, time.UTC)
	name := DeploymentName("corporate-website", EnvProd, now)
	require.Equal(t, "corporate-website-prod-20260823-143045", name)
}

func TestDeploymentName_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 8, 23, 17, 0, 0, 0, loc)
	name := DeploymentName("corporate-website", EnvDev, now)
	require.Equal(t, "corporate-website-dev-20260823-140000", name)
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "deploy.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_PartialFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	content := "project: corporate-website\nlocation: westus2\ntags:\n  costCenter: marketing\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, "westus2", s.Location)
	require.Equal(t, "infra/main.bicep", s.Infra.TemplateFile)
	require.Equal(t, "infra/parameters", s.Infra.ParametersDir)
	require.Equal(t, map[string]string{"costCenter": "marketing"}, s.Tags)
}

func TestLoadSettings_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: [unclosed"), 0o644))

	_, err := LoadSettings(path)
	require.Error(t, err)
}
