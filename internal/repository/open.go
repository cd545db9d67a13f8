package repository

import (
	"context"
	"fmt"
	"strings"

	"fruitfriends/internal/config"
	"fruitfriends/internal/database"
	"fruitfriends/internal/storage"

	"go.uber.org/zap"
)

// OpenStore opens the storage backend named by cfg.StorageBackend.
// The returned close func must be called when the store is no longer needed.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.StorageBackend) {
	case "memory":
		log.Info("Using in-memory storage")
		return storage.NewMemoryStore(), noop, nil

	case "file":
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file storage: %w", err)
		}
		log.Info("Using file storage", zap.String("dir", cfg.DataDir))
		return store, noop, nil

	case "sql", "":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, nil, err
		}

		applied, err := db.RunMigrations(ctx)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, name := range applied {
			log.Info("Applied migration", zap.String("file", name))
		}

		log.Info("Using SQL storage", zap.String("database_type", db.GetDialect().DriverName()))
		return NewKVRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
