// Package config defines the configuration model of the CloudSigma resource
// handler.
//
// [HandlerConfig] carries the connection settings of one handler instance
// (endpoint, credentials, display name, simulate flag, retry policy).
// [NodeDefinition] is the orchestrator-supplied description of a virtual
// machine. Both can be loaded from YAML; retry tunables can be overridden
// from the environment with [LoadRetryPolicy].
package config
