package compute

import (
	"context"
	"fmt"
	"slices"

	"github.com/occopus/sigmanode/internal/config"
	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
	"github.com/occopus/sigmanode/internal/provisioning"
)

// bootedStates end the wait for a new server.
var bootedStates = []cloudsigma.ServerState{
	cloudsigma.ServerStarting,
	cloudsigma.ServerStarted,
	cloudsigma.ServerRunning,
}

// haltedStates end the rollback wait.
var haltedStates = []cloudsigma.ServerState{
	cloudsigma.ServerStopped,
	cloudsigma.ServerUnknown,
}

// Provisioner creates nodes. It keeps no per-node state.
type Provisioner struct {
	rt           *provisioning.Runtime
	reclaimDrive bool
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithDriveReclaim makes a cancelled creation delete the cloned drive when
// no server exists yet.
func WithDriveReclaim(enabled bool) Option {
	return func(p *Provisioner) {
		p.reclaimDrive = enabled
	}
}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner(rt *provisioning.Runtime, opts ...Option) *Provisioner {
	p := &Provisioner{rt: rt}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create runs the creation protocol for def and returns the new server id.
//
// Failures return a *provisioning.NodeCreationError. If ctx is cancelled the
// returned error wraps the context error and no id is returned; a server that
// already exists is stopped and deleted first.
func (p *Provisioner) Create(ctx context.Context, def *config.NodeDefinition) (string, error) {
	node := nodeName(def)
	p.rt.Log.Info("Creating node", "handler", p.rt.Name, "node", node)

	p.enter(node, provisioning.PhaseCloningDrive)
	driveID, err := p.rt.Client.CloneDrive(ctx, def.Resource.LibDriveID)
	if err == nil && driveID == "" {
		err = fmt.Errorf("cloning library drive %s: did not receive UUID", def.Resource.LibDriveID)
	}
	if err != nil {
		if ctx.Err() != nil {
			return "", p.interrupted(ctx, node, "", "")
		}
		return "", p.fail(node, provisioning.PhaseCloningDrive, err)
	}
	p.created(node, provisioning.PhaseCloningDrive, "drive/"+driveID)

	p.enter(node, provisioning.PhaseAwaitingUnmounted)
	if err := p.awaitUnmounted(ctx, node, driveID); err != nil {
		return "", p.interrupted(ctx, node, driveID, "")
	}

	p.enter(node, provisioning.PhaseCreatingServer)
	desc := BuildServerDescriptor(def, driveID)
	serverID, err := p.rt.Client.CreateServer(ctx, desc)
	if err == nil && serverID == "" {
		err = fmt.Errorf("failed to create server %s: did not receive UUID", desc.Name)
	}
	if err != nil {
		if ctx.Err() != nil {
			return "", p.interrupted(ctx, node, driveID, "")
		}
		p.deleteDrive(context.WithoutCancel(ctx), node, provisioning.PhaseCreatingServer, driveID)
		return "", p.fail(node, provisioning.PhaseCreatingServer, err)
	}
	p.created(node, provisioning.PhaseCreatingServer, "server/"+serverID)

	p.enter(node, provisioning.PhaseAwaitingRunning)
	if err := p.awaitRunning(ctx, node, serverID); err != nil {
		return "", p.interrupted(ctx, node, driveID, serverID)
	}

	p.enter(node, provisioning.PhaseDone)
	p.rt.Log.Info("Node created", "handler", p.rt.Name, "node", node, "server", serverID)
	return serverID, nil
}

// awaitUnmounted polls the drive until it is unmounted. It only returns an
// error when ctx ends; failed polls count as still cloning.
func (p *Provisioner) awaitUnmounted(ctx context.Context, node, driveID string) error {
	for {
		st := p.rt.DriveState(ctx, driveID)
		if st == cloudsigma.DriveUnmounted {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		p.poll(node, provisioning.PhaseAwaitingUnmounted, "drive/"+driveID,
			fmt.Sprintf("waiting for cloned drive to enter unmounted state, currently %s", st))
		if err := p.rt.Wait(ctx); err != nil {
			return err
		}
	}
}

// awaitRunning polls the server until it has booted, starting it whenever it
// is seen stopped. It only returns an error when ctx ends.
func (p *Provisioner) awaitRunning(ctx context.Context, node, serverID string) error {
	st := p.rt.ServerState(ctx, serverID)
	for !slices.Contains(bootedStates, st) {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.poll(node, provisioning.PhaseAwaitingRunning, "server/"+serverID,
			fmt.Sprintf("server is in %s state, waiting to enter starting state", st))

		if st == cloudsigma.ServerStopped {
			if err := p.rt.Client.StartServer(ctx, serverID); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				p.rt.Log.V(1).Info("Start request failed, will poll again",
					"handler", p.rt.Name, "server", serverID, "error", err.Error())
			}
		}

		if err := p.rt.Wait(ctx); err != nil {
			return err
		}
		st = p.rt.ServerState(ctx, serverID)
	}
	// A cancellation that raced with the last poll still wins.
	return ctx.Err()
}

// interrupted rolls back what the cancelled creation allocated and returns
// the cancellation. Cleanup runs on a detached context and its failures are
// only logged.
func (p *Provisioner) interrupted(ctx context.Context, node, driveID, serverID string) error {
	p.rt.Log.Info("Interrupting node creation, rolling back", "handler", p.rt.Name, "node", node)
	cleanup := context.WithoutCancel(ctx)

	switch {
	case serverID != "":
		p.rollbackServer(cleanup, node, serverID)
	case driveID != "" && p.reclaimDrive:
		p.reclaimClonedDrive(cleanup, node, driveID)
	case driveID != "":
		p.rt.Log.Info("Leaving cloned drive in place", "handler", p.rt.Name, "node", node, "drive", driveID)
	}

	err := ctx.Err()
	if cause := context.Cause(ctx); cause != nil && cause != err {
		return fmt.Errorf("creation of node %q interrupted: %w (%w)", node, err, cause)
	}
	return fmt.Errorf("creation of node %q interrupted: %w", node, err)
}

// rollbackServer stops the server, waits until it is halted and deletes it
// together with its drives.
func (p *Provisioner) rollbackServer(ctx context.Context, node, serverID string) {
	p.enter(node, provisioning.PhaseRollingBack)
	resource := "server/" + serverID

	st := p.rt.ServerState(ctx, serverID)
	for !slices.Contains(haltedStates, st) {
		p.poll(node, provisioning.PhaseRollingBack, resource, fmt.Sprintf("server is in %s state", st))
		_ = p.rt.Wait(ctx)
		if st != cloudsigma.ServerStopping {
			if err := p.rt.Client.StopServer(ctx, serverID); err != nil {
				p.rt.Log.V(1).Info("Stop request failed, will poll again",
					"handler", p.rt.Name, "server", serverID, "error", err.Error())
			}
		}
		st = p.rt.ServerState(ctx, serverID)
	}

	if err := p.rt.Client.DeleteServer(ctx, serverID); err != nil {
		p.cleanupFailed(node, provisioning.PhaseRollingBack, resource, err)
		return
	}
	p.deleted(node, provisioning.PhaseRollingBack, resource)
}

// reclaimClonedDrive waits until the drive can be deleted and deletes it.
func (p *Provisioner) reclaimClonedDrive(ctx context.Context, node, driveID string) {
	p.enter(node, provisioning.PhaseRollingBack)
	for {
		st := p.rt.DriveState(ctx, driveID)
		if st == cloudsigma.DriveUnmounted || st == cloudsigma.DriveUnknown {
			break
		}
		p.poll(node, provisioning.PhaseRollingBack, "drive/"+driveID, fmt.Sprintf("drive is in %s state", st))
		_ = p.rt.Wait(ctx)
	}
	p.deleteDrive(ctx, node, provisioning.PhaseRollingBack, driveID)
}

func (p *Provisioner) deleteDrive(ctx context.Context, node string, phase provisioning.Phase, driveID string) {
	resource := "drive/" + driveID
	if err := p.rt.Client.DeleteDrive(ctx, driveID); err != nil {
		p.cleanupFailed(node, phase, resource, err)
		return
	}
	p.deleted(node, phase, resource)
}

func (p *Provisioner) fail(node string, phase provisioning.Phase, cause error) error {
	err := &provisioning.NodeCreationError{Node: node, Phase: phase, Cause: cause}
	provisioning.Emit(p.rt.Observer, provisioning.Event{
		Type:    provisioning.EventPhaseFailed,
		Phase:   phase,
		Node:    node,
		Message: err.Error(),
	})
	return err
}

func (p *Provisioner) enter(node string, phase provisioning.Phase) {
	provisioning.EnterPhase(p.rt.Observer, node, phase)
}

func (p *Provisioner) poll(node string, phase provisioning.Phase, resource, msg string) {
	provisioning.Emit(p.rt.Observer, provisioning.Event{
		Type:     provisioning.EventPoll,
		Phase:    phase,
		Node:     node,
		Resource: resource,
		Message:  msg,
	})
}

func (p *Provisioner) created(node string, phase provisioning.Phase, resource string) {
	provisioning.Emit(p.rt.Observer, provisioning.Event{
		Type:     provisioning.EventResourceCreated,
		Phase:    phase,
		Node:     node,
		Resource: resource,
		Message:  resource + " created",
	})
}

func (p *Provisioner) deleted(node string, phase provisioning.Phase, resource string) {
	provisioning.Emit(p.rt.Observer, provisioning.Event{
		Type:     provisioning.EventResourceDeleted,
		Phase:    phase,
		Node:     node,
		Resource: resource,
		Message:  resource + " deleted",
	})
}

func (p *Provisioner) cleanupFailed(node string, phase provisioning.Phase, resource string, err error) {
	p.rt.Log.Error(err, "Cleanup failed", "handler", p.rt.Name, "node", node, "resource", resource)
	provisioning.Emit(p.rt.Observer, provisioning.Event{
		Type:     provisioning.EventCleanupFailed,
		Phase:    phase,
		Node:     node,
		Resource: resource,
		Message:  fmt.Sprintf("deleting %s failed: %v", resource, err),
	})
}

func nodeName(def *config.NodeDefinition) string {
	if def.Name != "" {
		return def.Name
	}
	if def.Resource.Description.Name != "" {
		return def.Resource.Description.Name
	}
	return "(unnamed)"
}
