package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corporate-website/deployctl/internal/config"
	"github.com/corporate-website/deployctl/internal/estimate"
)

// newCostsCommand creates the "costs" subcommand that prints the cost
// estimate table for an environment without touching any cloud resource.
func newCostsCommand(opts *Options) *cobra.Command {
	// Bound to a local so registering the flag default cannot clobber
	// DEPLOYCTL_ENVIRONMENT already applied to the shared options.
	var environment string

	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Print the estimated monthly cost table for an environment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			envName := environment
			if envName == "" {
				envName = opts.Environment
			}

			env, err := config.ParseEnvironment(envName)
			if err != nil {
				return err
			}

			estimate.Render(os.Stdout, env, estimate.ForEnvironment(env))
			return nil
		},
	}

	cmd.Flags().StringVarP(&environment, "environment", "e", "", "Environment to estimate (dev or prod)")

	return cmd
}
