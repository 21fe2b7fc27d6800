package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/quickcards/internal/config"
	"github.com/at-ishikawa/quickcards/internal/database"
	"github.com/at-ishikawa/quickcards/internal/storage"
)

// now is replaced in tests.
var now = time.Now

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured backend. The returned function releases it.
func openStore(ctx context.Context, cfg *config.Config) (*storage.Repository, func(), error) {
	options := []storage.Option{
		storage.WithWriteAttempts(cfg.Storage.WriteAttempts),
		storage.WithClock(now),
	}

	if cfg.Storage.Driver == config.DriverFile {
		kv := storage.NewFileStore(cfg.Storage.FileDirectory)
		return storage.NewRepository(kv, storage.YAMLCodec{}, options...), func() {}, nil
	}

	db, err := database.Open(*cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	closeFunc := func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close the database", "error", err)
		}
	}
	return storage.NewRepository(storage.NewSQLStore(db), storage.JSONCodec{}, options...), closeFunc, nil
}

// withStore loads the configuration, opens the store and reads everything
// stored before calling fn.
func withStore(
	ctx context.Context,
	fn func(ctx context.Context, cfg *config.Config, store *storage.Repository, snapshot storage.Snapshot) error,
) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	snapshot, err := store.Load(ctx)
	if err != nil {
		// The sample data is still usable when seeding it failed.
		if len(snapshot.Decks) == 0 {
			return fmt.Errorf("store.Load() > %w", err)
		}
		slog.Warn("failed to save the sample data", "error", err)
	}
	return fn(ctx, cfg, store, snapshot)
}
