// Package destroy terminates CloudSigma nodes.
//
// Termination stops the server if needed, waits until it is halted and
// deletes it together with its drives. It is best-effort: a delete that
// exhausts its retry budget is logged and reported in the Result, not
// returned as an error, so the orchestrator can always forget the node.
// Once started it ignores cancellation of the caller's context.
package destroy
