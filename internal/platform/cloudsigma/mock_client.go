package cloudsigma

import (
	"context"
	"sync"
)

// MockClient is a Client for tests. Unset functions fall back to the
// behaviour of NewSimulatedClient. Every call is recorded in order.
type MockClient struct {
	CloneDriveFunc   func(ctx context.Context, libDriveID string) (string, error)
	GetDriveFunc     func(ctx context.Context, driveID string) (*Drive, error)
	DeleteDriveFunc  func(ctx context.Context, driveID string) error
	CreateServerFunc func(ctx context.Context, desc ServerDescriptor) (string, error)
	GetServerFunc    func(ctx context.Context, serverID string) (*Server, error)
	DeleteServerFunc func(ctx context.Context, serverID string) error
	StartServerFunc  func(ctx context.Context, serverID string) error
	StopServerFunc   func(ctx context.Context, serverID string) error

	mu    sync.Mutex
	calls []string
}

var fallback = NewSimulatedClient()

func (m *MockClient) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the recorded call names in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how often the named method was called.
func (m *MockClient) CallCount(name string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

// CloneDrive implements Client.
func (m *MockClient) CloneDrive(ctx context.Context, libDriveID string) (string, error) {
	m.record("CloneDrive")
	if m.CloneDriveFunc != nil {
		return m.CloneDriveFunc(ctx, libDriveID)
	}
	return fallback.CloneDrive(ctx, libDriveID)
}

// GetDrive implements Client.
func (m *MockClient) GetDrive(ctx context.Context, driveID string) (*Drive, error) {
	m.record("GetDrive")
	if m.GetDriveFunc != nil {
		return m.GetDriveFunc(ctx, driveID)
	}
	return fallback.GetDrive(ctx, driveID)
}

// DeleteDrive implements Client.
func (m *MockClient) DeleteDrive(ctx context.Context, driveID string) error {
	m.record("DeleteDrive")
	if m.DeleteDriveFunc != nil {
		return m.DeleteDriveFunc(ctx, driveID)
	}
	return nil
}

// CreateServer implements Client.
func (m *MockClient) CreateServer(ctx context.Context, desc ServerDescriptor) (string, error) {
	m.record("CreateServer")
	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, desc)
	}
	return fallback.CreateServer(ctx, desc)
}

// GetServer implements Client.
func (m *MockClient) GetServer(ctx context.Context, serverID string) (*Server, error) {
	m.record("GetServer")
	if m.GetServerFunc != nil {
		return m.GetServerFunc(ctx, serverID)
	}
	return fallback.GetServer(ctx, serverID)
}

// DeleteServer implements Client.
func (m *MockClient) DeleteServer(ctx context.Context, serverID string) error {
	m.record("DeleteServer")
	if m.DeleteServerFunc != nil {
		return m.DeleteServerFunc(ctx, serverID)
	}
	return nil
}

// StartServer implements Client.
func (m *MockClient) StartServer(ctx context.Context, serverID string) error {
	m.record("StartServer")
	if m.StartServerFunc != nil {
		return m.StartServerFunc(ctx, serverID)
	}
	return nil
}

// StopServer implements Client.
func (m *MockClient) StopServer(ctx context.Context, serverID string) error {
	m.record("StopServer")
	if m.StopServerFunc != nil {
		return m.StopServerFunc(ctx, serverID)
	}
	return nil
}
