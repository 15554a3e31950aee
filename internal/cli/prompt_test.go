package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corporate-website/deployctl/internal/config"
)

func promptConfig() config.Config {
	return config.Config{
		Project:       "corporate-website",
		Environment:   config.EnvProd,
		Location:      "eastus",
		ResourceGroup: "rg-corporate-website-prod",
	}
}

func TestConfirmDeployment(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"y", true}, // EOF without newline still counts
		{"n\n", false},
		{"N\n", false},
		{"yes\n", false}, // single character answers only
		{"\n", false},    // default is no
		{"", false},      // closed stdin declines
		{"  y  \n", true},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		ok, err := confirmDeployment(strings.NewReader(tc.input), &out, promptConfig())
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, ok, "input %q", tc.input)
	}
}

func TestConfirmDeployment_PromptNamesTarget(t *testing.T) {
	var out bytes.Buffer
	_, err := confirmDeployment(strings.NewReader("n\n"), &out, promptConfig())
	require.NoError(t, err)

	prompt := out.String()
	require.Contains(t, prompt, "prod")
	require.Contains(t, prompt, "rg-corporate-website-prod")
	require.Contains(t, prompt, "[y/N]")
}
