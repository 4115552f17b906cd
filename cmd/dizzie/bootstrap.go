package main

import (
	"context"
	"errors"
	"fmt"

	"dizzie/internal/auth"
	"dizzie/internal/store"
)

// ensureOwner creates the configured owner account if it does not
// exist yet. Without OWNER_USERNAME/OWNER_PASSWORD nothing happens and
// privileged accounts must be seeded through the database.
func ensureOwner(ctx context.Context, cfg Config, dataStore *store.Store) error {
	if cfg.OwnerUsername == "" || cfg.OwnerPassword == "" {
		return nil
	}

	err := dataStore.CreateUser(ctx, cfg.OwnerUsername, cfg.OwnerPassword, string(auth.RoleOwner))
	if err != nil && !errors.Is(err, store.ErrExists) {
		return fmt.Errorf("bootstrap owner: %w", err)
	}
	return nil
}
