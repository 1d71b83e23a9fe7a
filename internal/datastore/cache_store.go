package datastore

import (
	"context"
	"fmt"

	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// CacheStore persists the last known content of each resource.
type CacheStore interface {
	// Load returns the entry for key, or nil, nil when none exists.
	// An entry that exists but cannot be read yields *StoreReadError.
	Load(ctx context.Context, key models.ResourceKey) (*models.CacheEntry, error)
	// Save atomically replaces the entry for key. Failures yield *StoreWriteError.
	Save(ctx context.Context, key models.ResourceKey, content []byte) error
	Close() error
}

// NewCacheStore opens the backend selected by cfg.Backend.
func NewCacheStore(cfg config.StorageConfig, logger zerolog.Logger) (CacheStore, error) {
	switch cfg.Backend {
	case "", config.StorageBackendFile:
		return NewFileCacheStore(cfg.CacheDir, logger)
	case config.StorageBackendSQLite:
		return NewSQLiteCacheStore(cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
