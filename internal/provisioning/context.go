package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
	"github.com/occopus/sigmanode/internal/util/retry"
)

// Runtime wraps the collaborators shared by the node state machines.
// It holds no per-node state and is safe for concurrent use.
type Runtime struct {
	Client   cloudsigma.Client
	Policy   retry.Policy
	Log      logr.Logger
	Observer Observer

	// Name is the handler display name used in log messages.
	Name string
}

// NewRuntime creates a Runtime with a no-op observer and a discarding logger.
func NewRuntime(client cloudsigma.Client, policy retry.Policy, name string) *Runtime {
	return &Runtime{
		Client:   client,
		Policy:   policy.Normalize(),
		Log:      logr.Discard(),
		Observer: nopObserver{},
		Name:     name,
	}
}

// Wait sleeps one policy interval between polls.
func (rt *Runtime) Wait(ctx context.Context) error {
	return rt.Policy.Wait(ctx)
}

// ServerState polls the raw server state, logging fetch failures.
func (rt *Runtime) ServerState(ctx context.Context, serverID string) cloudsigma.ServerState {
	st, err := queryServerState(ctx, rt.Client, serverID)
	if err != nil {
		rt.Log.V(1).Info("Server state unavailable, treating as unknown",
			"handler", rt.Name, "server", serverID, "error", err.Error())
	}
	return st
}

// DriveState polls the drive state. Failures yield DriveUnknown.
func (rt *Runtime) DriveState(ctx context.Context, driveID string) cloudsigma.DriveState {
	drive, err := rt.Client.GetDrive(ctx, driveID)
	if err != nil {
		rt.Log.V(1).Info("Drive state unavailable, treating as unknown",
			"handler", rt.Name, "drive", driveID, "error", err.Error())
		return cloudsigma.DriveUnknown
	}
	return drive.State()
}
