package cli

import (
	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from DEPLOYCTL_* env vars.
type baseEnv struct {
	// SettingsPath is the deploy.yaml path from DEPLOYCTL_CONFIG.
	SettingsPath string `env:"DEPLOYCTL_CONFIG"`
	// Environment is the target environment from DEPLOYCTL_ENVIRONMENT.
	Environment string `env:"DEPLOYCTL_ENVIRONMENT"`
	// Location is the Azure region from DEPLOYCTL_LOCATION.
	Location string `env:"DEPLOYCTL_LOCATION"`
	// ResourceGroup is the group name override from DEPLOYCTL_RESOURCE_GROUP.
	ResourceGroup string `env:"DEPLOYCTL_RESOURCE_GROUP"`
	// LogLevel is the logging level from DEPLOYCTL_LOG_LEVEL.
	LogLevel string `env:"DEPLOYCTL_LOG_LEVEL"`
}

// parseEnv fills target from DEPLOYCTL_* env vars via caarlos0/env.
func parseEnv(target any) error {
	return envparse.Parse(target)
}

// applyEnvDefaults copies non-empty env values into opts as flag defaults.
// Explicit flags still win because they overwrite the same fields.
func applyEnvDefaults(opts *Options, defaults baseEnv) {
	if defaults.SettingsPath != "" {
		opts.SettingsPath = defaults.SettingsPath
	}
	if defaults.Environment != "" {
		opts.Environment = defaults.Environment
	}
	if defaults.Location != "" {
		opts.Location = defaults.Location
	}
	if defaults.ResourceGroup != "" {
		opts.ResourceGroup = defaults.ResourceGroup
	}
	if defaults.LogLevel != "" {
		opts.LogLevelName = defaults.LogLevel
	}
}
