package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"postboard/app/repositories"
	"postboard/config"

	"github.com/rs/zerolog"
)

var (
	// ErrNotBadger is returned by the commands that only make sense for the
	// badger store.
	ErrNotBadger = errors.New("command requires the badger store driver")

	// ErrCancelled is returned when the user declines a confirmation prompt.
	ErrCancelled = errors.New("operation cancelled")
)

// OpenStore opens the store selected by cfg. SQL stores are migrated to the
// latest schema before they are returned.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (repositories.Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		return openBadger(cfg)
	case config.DriverSQLite, config.DriverPostgres:
		store, err := repositories.OpenSQL(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		version, err := store.Migrate(ctx)
		if err != nil {
			store.Close()
			return nil, err
		}
		logger.Info().Str("driver", cfg.Driver).Uint("schema_version", version).Msg("store migrated")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openBadger(cfg config.StoreConfig) (*repositories.BadgerStore, error) {
	if cfg.Driver != config.DriverBadger {
		return nil, ErrNotBadger
	}
	if !cfg.InMemory {
		if err := os.MkdirAll(filepath.Clean(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return repositories.OpenBadger(cfg.Path, cfg.InMemory)
}
