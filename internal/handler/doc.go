// Package handler is the orchestrator-facing resource handler for
// CloudSigma.
//
// A Handler validates its configuration once, picks the API client
// (real or simulated), and exposes the node operations: create, drop,
// state and address queries. It keeps no per-node state, so one Handler
// may serve concurrent operations on different nodes.
//
// Handlers are registered by protocol id and can be looked up with
// NewByProtocol.
package handler
