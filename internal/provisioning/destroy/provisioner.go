package destroy

import (
	"context"
	"fmt"
	"slices"

	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
	"github.com/occopus/sigmanode/internal/provisioning"
)

// haltedStates allow the server to be deleted.
var haltedStates = []cloudsigma.ServerState{
	cloudsigma.ServerStopped,
	cloudsigma.ServerUnknown,
}

// Result reports the outcome of a termination.
type Result struct {
	InstanceID string
	// Skipped is set when the handle referred to no instance.
	Skipped bool
	// Deleted is set when the delete request succeeded.
	Deleted bool
	// Err is the swallowed delete failure, if any.
	Err error
}

// Terminator drops nodes.
type Terminator struct {
	rt *provisioning.Runtime
}

// NewTerminator creates a new terminator.
func NewTerminator(rt *provisioning.Runtime) *Terminator {
	return &Terminator{rt: rt}
}

// Terminate drops the node referred to by handle. It only returns an error
// for a malformed handle; an empty handle is a no-op.
func (t *Terminator) Terminate(ctx context.Context, handle provisioning.InstanceHandle) (Result, error) {
	res := Result{InstanceID: handle.InstanceID}
	if err := handle.Validate(); err != nil {
		return res, err
	}
	if handle.Empty() {
		t.rt.Log.V(1).Info("No instance to drop", "handler", t.rt.Name, "node", handle.NodeID)
		res.Skipped = true
		return res, nil
	}

	ctx = context.WithoutCancel(ctx)
	node := handle.NodeID
	serverID := handle.InstanceID
	resource := "server/" + serverID

	t.rt.Log.Info("Dropping node", "handler", t.rt.Name, "node", node, "server", serverID)

	provisioning.EnterPhase(t.rt.Observer, node, provisioning.PhaseChecking)
	st := t.rt.ServerState(ctx, serverID)

	if !slices.Contains(haltedStates, st) {
		provisioning.EnterPhase(t.rt.Observer, node, provisioning.PhaseStopping)
		if st != cloudsigma.ServerStopping {
			t.stop(ctx, serverID)
		}

		provisioning.EnterPhase(t.rt.Observer, node, provisioning.PhaseAwaitingStopped)
		for {
			_ = t.rt.Wait(ctx)
			st = t.rt.ServerState(ctx, serverID)
			if slices.Contains(haltedStates, st) {
				break
			}
			provisioning.Emit(t.rt.Observer, provisioning.Event{
				Type:     provisioning.EventPoll,
				Phase:    provisioning.PhaseAwaitingStopped,
				Node:     node,
				Resource: resource,
				Message:  fmt.Sprintf("server is in %s state, waiting to stop", st),
			})
			if st != cloudsigma.ServerStopping {
				t.stop(ctx, serverID)
			}
		}
	}

	provisioning.EnterPhase(t.rt.Observer, node, provisioning.PhaseDeleting)
	if err := t.rt.Client.DeleteServer(ctx, serverID); err != nil {
		res.Err = err
		t.rt.Log.Error(err, "Deleting server failed, forgetting node anyway",
			"handler", t.rt.Name, "node", node, "server", serverID)
		provisioning.Emit(t.rt.Observer, provisioning.Event{
			Type:     provisioning.EventCleanupFailed,
			Phase:    provisioning.PhaseDeleting,
			Node:     node,
			Resource: resource,
			Message:  fmt.Sprintf("deleting %s failed: %v", resource, err),
		})
	} else {
		res.Deleted = true
		provisioning.Emit(t.rt.Observer, provisioning.Event{
			Type:     provisioning.EventResourceDeleted,
			Phase:    provisioning.PhaseDeleting,
			Node:     node,
			Resource: resource,
			Message:  resource + " deleted",
		})
	}

	provisioning.EnterPhase(t.rt.Observer, node, provisioning.PhaseDone)
	return res, nil
}

// stop requests a stop. The following polls decide whether it worked.
func (t *Terminator) stop(ctx context.Context, serverID string) {
	if err := t.rt.Client.StopServer(ctx, serverID); err != nil {
		t.rt.Log.V(1).Info("Stop request failed, will poll again",
			"handler", t.rt.Name, "server", serverID, "error", err.Error())
	}
}
