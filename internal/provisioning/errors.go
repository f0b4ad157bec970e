package provisioning

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProviderState is wrapped by UnknownStateError.
	ErrUnknownProviderState = errors.New("unknown CloudSigma server state")

	// ErrMalformedHandle is wrapped by MalformedHandleError.
	ErrMalformedHandle = errors.New("malformed instance handle")

	// ErrNodeCreation is wrapped by NodeCreationError.
	ErrNodeCreation = errors.New("node creation failed")
)

// UnknownStateError is returned when the provider reports a server state
// outside the known set. It is never mapped to a default.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownProviderState, e.State)
}

func (e *UnknownStateError) Unwrap() error {
	return ErrUnknownProviderState
}

// MalformedHandleError is returned for handles whose instance id cannot be
// sent to the API.
type MalformedHandleError struct {
	InstanceID string
}

func (e *MalformedHandleError) Error() string {
	return fmt.Sprintf("%s: instance id %q", ErrMalformedHandle, e.InstanceID)
}

func (e *MalformedHandleError) Unwrap() error {
	return ErrMalformedHandle
}

// NodeCreationError carries the node name and the proximate cause of a
// failed creation.
type NodeCreationError struct {
	Node  string
	Phase Phase
	Cause error
}

func (e *NodeCreationError) Error() string {
	return fmt.Sprintf("creating node %q failed while %s: %v", e.Node, e.Phase, e.Cause)
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *NodeCreationError) Unwrap() []error {
	return []error{ErrNodeCreation, e.Cause}
}
