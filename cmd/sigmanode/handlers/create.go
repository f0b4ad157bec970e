package handlers

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
)

// Create handles the create command.
//
// SIGINT and SIGTERM cancel the creation; a server that already exists is
// rolled back before Create returns.
func Create(ctx context.Context, opts Options, configPath, nodePath string) error {
	def, err := loadNodeFile(nodePath)
	if err != nil {
		return err
	}

	h, release, err := openHandler(opts, configPath)
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	id, err := h.CreateNode(ctx, def)
	if err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	printValue("Instance", id)
	return nil
}
