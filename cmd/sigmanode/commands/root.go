// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers
// package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/occopus/sigmanode/cmd/sigmanode/handlers"
)

// globals is bound to the persistent flags of the root command.
var globals handlers.Options

// Root returns the root command for the sigmanode CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sigmanode",
		Short:         "Create and drop CloudSigma nodes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().CountVarP(&globals.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&globals.DryRun, "dry-run", false, "Simulate all API calls")
	cmd.PersistentFlags().StringVar(&globals.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the command runs")

	cmd.AddCommand(Create())
	cmd.AddCommand(Drop())
	cmd.AddCommand(State())
	cmd.AddCommand(Address())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Version())

	return cmd
}
