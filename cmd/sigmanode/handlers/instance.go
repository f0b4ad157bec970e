package handlers

import (
	"context"
	"fmt"
	"log"
)

// Drop handles the drop command.
func Drop(ctx context.Context, opts Options, target Target) error {
	h, release, err := openHandler(opts, target.ConfigPath)
	if err != nil {
		return err
	}
	defer release()

	if err := h.DropNode(ctx, target.handle()); err != nil {
		return fmt.Errorf("drop failed: %w", err)
	}

	log.Printf("Node %s dropped", target.InstanceID)
	return nil
}

// State handles the state command.
func State(ctx context.Context, opts Options, target Target) error {
	h, release, err := openHandler(opts, target.ConfigPath)
	if err != nil {
		return err
	}
	defer release()

	st, err := h.GetState(ctx, target.handle())
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}

	printState(st)
	return nil
}

// Address handles the address command.
func Address(ctx context.Context, opts Options, target Target, ipOnly bool) error {
	h, release, err := openHandler(opts, target.ConfigPath)
	if err != nil {
		return err
	}
	defer release()

	get := h.GetAddress
	if ipOnly {
		get = h.GetIPAddress
	}
	addr, err := get(ctx, target.handle())
	if err != nil {
		return fmt.Errorf("failed to get address: %w", err)
	}

	printValue("Address", addr)
	return nil
}
