package cloudsigma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// CloneDrive clones a library drive.
func (c *RealClient) CloneDrive(ctx context.Context, libDriveID string) (string, error) {
	op := operation{
		name:     "clone_drive",
		method:   http.MethodPost,
		path:     resourcePath("libdrives", libDriveID) + "action/",
		query:    url.Values{"do": {"clone"}},
		expected: http.StatusAccepted,
	}
	body, err := c.invoke(ctx, op)
	if err != nil {
		return "", fmt.Errorf("cloning library drive %s: %w", libDriveID, err)
	}
	drive, err := decodeFirst[Drive](op.name, body)
	if err != nil {
		return "", fmt.Errorf("cloning library drive %s: %w", libDriveID, err)
	}
	if drive.UUID == "" {
		return "", fmt.Errorf("cloning library drive %s: did not receive UUID", libDriveID)
	}
	c.log.V(1).Info("Cloned library drive", "handler", c.name, "libdrive", libDriveID, "drive", drive.UUID)
	return drive.UUID, nil
}

// GetDrive fetches a drive.
func (c *RealClient) GetDrive(ctx context.Context, driveID string) (*Drive, error) {
	op := operation{
		name:     "get_drive",
		method:   http.MethodGet,
		path:     resourcePath("drives", driveID),
		expected: http.StatusOK,
	}
	body, err := c.invoke(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("failed to query status of drive %s: %w", driveID, err)
	}
	var drive Drive
	if err := json.Unmarshal(body, &drive); err != nil {
		return nil, fmt.Errorf("failed to decode drive %s: %w", driveID, err)
	}
	c.log.V(1).Info("Drive status", "handler", c.name, "drive", driveID, "status", drive.Status)
	return &drive, nil
}

// DeleteDrive deletes a drive.
func (c *RealClient) DeleteDrive(ctx context.Context, driveID string) error {
	_, err := c.invoke(ctx, operation{
		name:     "delete_drive",
		method:   http.MethodDelete,
		path:     resourcePath("drives", driveID),
		expected: http.StatusNoContent,
	})
	if err != nil {
		return fmt.Errorf("deleting cloned drive %s: %w", driveID, err)
	}
	return nil
}
