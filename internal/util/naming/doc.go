// Package naming provides consistent names for CloudSigma resources.
//
// Server names follow the pattern occopus-{infra}-{node}-{8hex}. The random
// suffix keeps names unique when the same node definition is instantiated
// more than once.
package naming
