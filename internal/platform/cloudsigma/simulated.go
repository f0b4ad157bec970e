package cloudsigma

import (
	"context"
	"sync"
)

// Canned values returned by a SimulatedClient created with NewSimulatedClient.
const (
	SimulatedDriveID   = "uuid123"
	SimulatedServerID  = "1"
	SimulatedIPAddress = "127.0.0.1"
)

// SimulatedClient is the dry-run Client. It performs no network I/O and
// answers every call immediately with its configured values. Server
// actions take effect at once: stop reports stopped, start reports
// running, delete reports unknown.
type SimulatedClient struct {
	DriveID      string
	DriveStatus  DriveState
	ServerID     string
	ServerStatus ServerState
	IPAddress    string

	mu      sync.Mutex
	servers map[string]ServerState
}

// NewSimulatedClient returns a SimulatedClient whose nodes come up at once.
func NewSimulatedClient() *SimulatedClient {
	return &SimulatedClient{
		DriveID:      SimulatedDriveID,
		DriveStatus:  DriveUnmounted,
		ServerID:     SimulatedServerID,
		ServerStatus: ServerRunning,
		IPAddress:    SimulatedIPAddress,
	}
}

// CloneDrive implements Client.
func (s *SimulatedClient) CloneDrive(context.Context, string) (string, error) {
	return s.DriveID, nil
}

// GetDrive implements Client.
func (s *SimulatedClient) GetDrive(_ context.Context, driveID string) (*Drive, error) {
	return &Drive{UUID: driveID, Status: string(s.DriveStatus)}, nil
}

// DeleteDrive implements Client.
func (s *SimulatedClient) DeleteDrive(context.Context, string) error {
	return nil
}

// CreateServer implements Client.
func (s *SimulatedClient) CreateServer(context.Context, ServerDescriptor) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.servers, s.ServerID)
	return s.ServerID, nil
}

// GetServer implements Client.
func (s *SimulatedClient) GetServer(_ context.Context, serverID string) (*Server, error) {
	status := s.status(serverID)
	srv := &Server{UUID: serverID, Status: string(status)}
	if s.IPAddress != "" && status != ServerUnknown {
		srv.Runtime = &ServerRuntime{NICs: []*NIC{{IPv4: &IPRef{UUID: s.IPAddress}}}}
	}
	return srv, nil
}

// DeleteServer implements Client.
func (s *SimulatedClient) DeleteServer(_ context.Context, serverID string) error {
	s.setStatus(serverID, ServerUnknown)
	return nil
}

// StartServer implements Client.
func (s *SimulatedClient) StartServer(_ context.Context, serverID string) error {
	s.setStatus(serverID, ServerRunning)
	return nil
}

// StopServer implements Client.
func (s *SimulatedClient) StopServer(_ context.Context, serverID string) error {
	s.setStatus(serverID, ServerStopped)
	return nil
}

func (s *SimulatedClient) status(serverID string) ServerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.servers[serverID]; ok {
		return st
	}
	return s.ServerStatus
}

func (s *SimulatedClient) setStatus(serverID string, st ServerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.servers == nil {
		s.servers = make(map[string]ServerState)
	}
	s.servers[serverID] = st
}
