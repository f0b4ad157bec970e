package provisioning

import (
	"context"

	"github.com/occopus/sigmanode/internal/platform/cloudsigma"
)

// CanonicalState is the orchestrator-wide lifecycle vocabulary.
type CanonicalState string

// Canonical states.
const (
	StateReady    CanonicalState = "READY"
	StatePending  CanonicalState = "PENDING"
	StateShutdown CanonicalState = "SHUTDOWN"
	StateTmpFail  CanonicalState = "TMP_FAIL"
)

var stateMapping = map[cloudsigma.ServerState]CanonicalState{
	cloudsigma.ServerStopping:    StateShutdown,
	cloudsigma.ServerStopped:     StateShutdown,
	cloudsigma.ServerRunning:     StateReady,
	cloudsigma.ServerPaused:      StatePending,
	cloudsigma.ServerStarting:    StatePending,
	cloudsigma.ServerUnavailable: StateTmpFail,
	cloudsigma.ServerUnknown:     StateTmpFail,
}

// MapServerState maps a raw provider server state to its canonical state.
// Unknown input yields an *UnknownStateError.
func MapServerState(raw string) (CanonicalState, error) {
	st, ok := stateMapping[cloudsigma.ServerState(raw)]
	if !ok {
		return "", &UnknownStateError{State: raw}
	}
	return st, nil
}

// QueryServerState returns the raw state of a server, exactly as reported. Any failure to fetch
// it, a missing status field, or an empty id, yields "unknown"; callers poll
// past it.
func QueryServerState(ctx context.Context, client cloudsigma.Client, serverID string) cloudsigma.ServerState {
	st, _ := queryServerState(ctx, client, serverID)
	return st
}

func queryServerState(ctx context.Context, client cloudsigma.Client, serverID string) (cloudsigma.ServerState, error) {
	if serverID == "" {
		return cloudsigma.ServerUnknown, nil
	}
	srv, err := client.GetServer(ctx, serverID)
	if err != nil {
		return cloudsigma.ServerUnknown, err
	}
	if srv == nil || srv.Status == "" {
		return cloudsigma.ServerUnknown, nil
	}
	return cloudsigma.ServerState(srv.Status), nil
}
