package commands

import (
	"github.com/spf13/cobra"

	"github.com/occopus/sigmanode/cmd/sigmanode/handlers"
)

// instanceFlags are shared by the commands that operate on an existing node.
type instanceFlags struct {
	configPath string
	instanceID string
	nodeID     string
}

func (f *instanceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to handler configuration file (required)")
	cmd.Flags().StringVar(&f.instanceID, "instance", "", "Instance id returned by create")
	cmd.Flags().StringVar(&f.nodeID, "node-id", "", "Node id, used in log messages")
	_ = cmd.MarkFlagRequired("config")
}

func (f *instanceFlags) target() handlers.Target {
	return handlers.Target{
		ConfigPath: f.configPath,
		InstanceID: f.instanceID,
		NodeID:     f.nodeID,
	}
}

// Drop returns the drop command.
func Drop() *cobra.Command {
	var flags instanceFlags

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Stop and delete a node together with its drives",
		Long: `Drop stops the server if needed, waits until it is stopped and deletes it
with all attached drives. A failed delete is logged but does not fail the
command. An empty instance id is a no-op.

Example:
  sigmanode drop -c handler.yaml --instance 4b9c...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Drop(cmd.Context(), globals, flags.target())
		},
	}
	flags.bind(cmd)

	return cmd
}

// State returns the state command.
func State() *cobra.Command {
	var flags instanceFlags

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the canonical state of a node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.State(cmd.Context(), globals, flags.target())
		},
	}
	flags.bind(cmd)

	return cmd
}

// Address returns the address command.
func Address() *cobra.Command {
	var flags instanceFlags
	var ipOnly bool

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the address of a node",
		Long: `Address prints the IPv4 address of the first network interface of the
node, or nothing if no address is assigned yet.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Address(cmd.Context(), globals, flags.target(), ipOnly)
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&ipOnly, "ip", false, "Print the IP address")

	return cmd
}
