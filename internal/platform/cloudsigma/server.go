package cloudsigma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// CreateServer creates a server from desc.
func (c *RealClient) CreateServer(ctx context.Context, desc ServerDescriptor) (string, error) {
	op := operation{
		name:     "create_server",
		method:   http.MethodPost,
		path:     "/servers/",
		body:     objectList[ServerDescriptor]{Objects: []ServerDescriptor{desc}},
		expected: http.StatusCreated,
	}
	body, err := c.invoke(ctx, op)
	if err != nil {
		return "", fmt.Errorf("failed to create server %s: %w", desc.Name, err)
	}
	srv, err := decodeFirst[Server](op.name, body)
	if err != nil {
		return "", fmt.Errorf("failed to create server %s: %w", desc.Name, err)
	}
	if srv.UUID == "" {
		return "", fmt.Errorf("failed to create server %s: did not receive UUID", desc.Name)
	}
	c.log.V(1).Info("Created server", "handler", c.name, "server", srv.UUID, "name", desc.Name)
	return srv.UUID, nil
}

// GetServer fetches a server.
func (c *RealClient) GetServer(ctx context.Context, serverID string) (*Server, error) {
	body, err := c.invoke(ctx, operation{
		name:     "get_server",
		method:   http.MethodGet,
		path:     resourcePath("servers", serverID),
		expected: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get info from server %s: %w", serverID, err)
	}
	var srv Server
	if err := json.Unmarshal(body, &srv); err != nil {
		return nil, fmt.Errorf("failed to decode server %s: %w", serverID, err)
	}
	return &srv, nil
}

// DeleteServer deletes a server and all its drives.
func (c *RealClient) DeleteServer(ctx context.Context, serverID string) error {
	_, err := c.invoke(ctx, operation{
		name:     "delete_server",
		method:   http.MethodDelete,
		path:     resourcePath("servers", serverID),
		query:    url.Values{"recurse": {"all_drives"}},
		expected: http.StatusNoContent,
	})
	if err != nil {
		return fmt.Errorf("failed to delete server %s: %w", serverID, err)
	}
	return nil
}

// StartServer starts a stopped server.
func (c *RealClient) StartServer(ctx context.Context, serverID string) error {
	return c.serverAction(ctx, serverID, "start")
}

// StopServer stops a running server.
func (c *RealClient) StopServer(ctx context.Context, serverID string) error {
	return c.serverAction(ctx, serverID, "stop")
}

func (c *RealClient) serverAction(ctx context.Context, serverID, action string) error {
	_, err := c.invoke(ctx, operation{
		name:     action + "_server",
		method:   http.MethodPost,
		path:     resourcePath("servers", serverID) + "action/",
		query:    url.Values{"do": {action}},
		expected: http.StatusAccepted,
	})
	if err != nil {
		return fmt.Errorf("failed to %s server %s: %w", action, serverID, err)
	}
	return nil
}
