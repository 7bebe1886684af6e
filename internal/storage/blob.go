package storage

import (
	"context"
	"fmt"

	"room-designer/internal/common/config"
)

// ============================================================
// Blob Store
// ============================================================

// BlobStore is the key-value boundary: whole blobs are read and written,
// never merged.
type BlobStore interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Put(ctx context.Context, key string, data []byte) error
	// Delete of an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.Backend {
	case "", "sqlite":
		db, err := OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		store, err := NewSQLite(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	case "redis":
		store := NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return store, nil
	case "file":
		return NewFileStore(cfg.Dir), nil
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
