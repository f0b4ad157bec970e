// Package provisioning provides the types shared by the node lifecycle state
// machines.
//
// # Subpackages
//
//   - compute/: node creation: clone drive, wait unmounted, create server,
//     wait running, roll back on cancellation
//   - destroy/: node termination: stop, wait stopped, delete with drives
//
// # Core Types
//
// Runtime carries the API client, retry policy, logger and observer.
// InstanceHandle is the orchestrator's reference to a created node.
// MapServerState translates provider server states into CanonicalState.
// Observer receives a structured event on every state transition.
package provisioning
