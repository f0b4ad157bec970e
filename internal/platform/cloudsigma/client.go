package cloudsigma

import (
	"context"
	"encoding/json"
	"maps"
	"strings"
)

// DriveState is the provider-reported status of a drive, lower-cased.
type DriveState string

// Drive states. Only DriveUnmounted means the drive can be attached.
const (
	DriveCloning   DriveState = "cloning"
	DriveUnmounted DriveState = "unmounted"
	DriveMounted   DriveState = "mounted"
	DriveUnknown   DriveState = "unknown"
)

// ServerState is the provider-reported status of a server.
type ServerState string

// Server states. ServerStarted is not documented but treated as booted.
const (
	ServerStarting    ServerState = "starting"
	ServerStarted     ServerState = "started"
	ServerRunning     ServerState = "running"
	ServerStopping    ServerState = "stopping"
	ServerStopped     ServerState = "stopped"
	ServerPaused      ServerState = "paused"
	ServerUnavailable ServerState = "unavailable"
	ServerUnknown     ServerState = "unknown"
)

// Client issues CloudSigma API operations.
type Client interface {
	// CloneDrive clones a library drive and returns the id of the new drive.
	CloneDrive(ctx context.Context, libDriveID string) (string, error)
	GetDrive(ctx context.Context, driveID string) (*Drive, error)
	DeleteDrive(ctx context.Context, driveID string) error

	// CreateServer creates a server and returns its id.
	CreateServer(ctx context.Context, desc ServerDescriptor) (string, error)
	GetServer(ctx context.Context, serverID string) (*Server, error)
	// DeleteServer deletes the server together with all attached drives.
	DeleteServer(ctx context.Context, serverID string) error
	StartServer(ctx context.Context, serverID string) error
	StopServer(ctx context.Context, serverID string) error
}

// Drive is the subset of the drive resource the handler reads.
type Drive struct {
	UUID   string `json:"uuid"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
}

// State returns the lower-cased drive status, or DriveUnknown if absent.
func (d *Drive) State() DriveState {
	if d == nil || d.Status == "" {
		return DriveUnknown
	}
	return DriveState(strings.ToLower(d.Status))
}

// Server is the subset of the server resource the handler reads.
type Server struct {
	UUID    string         `json:"uuid"`
	Name    string         `json:"name,omitempty"`
	Status  string         `json:"status"`
	Runtime *ServerRuntime `json:"runtime,omitempty"`
}

// ServerRuntime holds runtime data of a started server.
type ServerRuntime struct {
	NICs []*NIC `json:"nics"`
}

// NIC is a runtime network interface.
type NIC struct {
	IPv4 *IPRef `json:"ip_v4,omitempty"`
}

// IPRef references an IP resource; its uuid is the address itself.
type IPRef struct {
	UUID string `json:"uuid"`
}

// IPv4 returns the address of the first interface that has one, or "".
func (s *Server) IPv4() string {
	if s == nil || s.Runtime == nil {
		return ""
	}
	for _, nic := range s.Runtime.NICs {
		if nic == nil || nic.IPv4 == nil {
			continue
		}
		return nic.IPv4.UUID
	}
	return ""
}

// DriveAttachment attaches a drive to a server.
type DriveAttachment struct {
	BootOrder  int    `json:"boot_order"`
	DevChannel string `json:"dev_channel"`
	Device     string `json:"device"`
	Drive      string `json:"drive"`
}

// ServerDescriptor is the body of a create-server request. Extra carries
// description fields the handler passes through untouched; named fields win
// over Extra on conflict.
type ServerDescriptor struct {
	Name        string
	CPU         int64
	Mem         int64
	VNCPassword string
	Drives      []DriveAttachment
	Meta        map[string]string
	Extra       map[string]any
}

// MarshalJSON flattens Extra into the descriptor object.
func (d ServerDescriptor) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+6)
	maps.Copy(out, d.Extra)
	out["name"] = d.Name
	out["cpu"] = d.CPU
	out["mem"] = d.Mem
	out["vnc_password"] = d.VNCPassword
	drives := d.Drives
	if drives == nil {
		drives = []DriveAttachment{}
	}
	out["drives"] = drives
	if len(d.Meta) > 0 {
		out["meta"] = d.Meta
	}
	return json.Marshal(out)
}

// objectList is the envelope CloudSigma uses for request and response bodies.
type objectList[T any] struct {
	Objects []T `json:"objects"`
}
