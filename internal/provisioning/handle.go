package provisioning

import "strings"

// InstanceHandle is the only state the orchestrator keeps about a node
// between creation and later operations.
type InstanceHandle struct {
	InstanceID string `json:"instance_id" yaml:"instance_id"`
	NodeID     string `json:"node_id,omitempty" yaml:"node_id,omitempty"`
}

// Empty reports whether the handle refers to no instance.
func (h InstanceHandle) Empty() bool {
	return h.InstanceID == ""
}

// Validate rejects instance ids that cannot be a single URL path segment.
// An empty handle is valid.
func (h InstanceHandle) Validate() error {
	if strings.ContainsAny(h.InstanceID, "/?#% \t\r\n") {
		return &MalformedHandleError{InstanceID: h.InstanceID}
	}
	return nil
}
