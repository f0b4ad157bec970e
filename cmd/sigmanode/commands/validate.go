package commands

import (
	"github.com/spf13/cobra"

	"github.com/occopus/sigmanode/cmd/sigmanode/handlers"
)

// Validate returns the validate command.
func Validate() *cobra.Command {
	var configPath, nodePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a node definition and optionally a handler configuration",
		Long: `Validate checks the resource section of a node definition against the
handler schema without contacting the API. With -c the handler
configuration is checked too.

Example:
  sigmanode validate -n node.yaml -c handler.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(nodePath, configPath)
		},
	}

	cmd.Flags().StringVarP(&nodePath, "node", "n", "", "Path to node definition file (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to handler configuration file")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}
