// Package compute creates CloudSigma nodes.
//
// Creation is a state machine: clone the template drive, wait until the
// clone is unmounted, create a server booting from it, and wait until the
// server runs. Cancelling the context after the server exists rolls the
// server back (stop, wait, delete with drives) before the cancellation is
// returned to the caller.
package compute
