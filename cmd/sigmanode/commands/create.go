package commands

import (
	"github.com/spf13/cobra"

	"github.com/occopus/sigmanode/cmd/sigmanode/handlers"
)

// Create returns the create command.
func Create() *cobra.Command {
	var configPath, nodePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a node and print its instance id",
		Long: `Create clones the library drive of the node definition, creates a
server booting from it and waits until the server runs.

Interrupting the command (Ctrl-C or SIGTERM) after the server exists stops
and deletes it before exiting.

Example:
  sigmanode create -c handler.yaml -n node.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Create(cmd.Context(), globals, configPath, nodePath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to handler configuration file (required)")
	cmd.Flags().StringVarP(&nodePath, "node", "n", "", "Path to node definition file (required)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}
