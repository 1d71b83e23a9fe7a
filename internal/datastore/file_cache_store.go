package datastore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// FileCacheStore keeps one file per key under a base directory.
// The file holds the raw content bytes; its mtime is the entry's UpdatedAt.
type FileCacheStore struct {
	baseDir     string
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewFileCacheStore creates the store, creating baseDir if needed.
func NewFileCacheStore(baseDir string, logger zerolog.Logger) (*FileCacheStore, error) {
	if baseDir == "" {
		return nil, common.NewValidationError("cache_dir", baseDir, "cache directory is required")
	}
	fm := common.NewFileManager(logger)
	if err := fm.EnsureDirectory(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileCacheStore{
		baseDir:     baseDir,
		logger:      logger.With().Str("component", "FileCacheStore").Logger(),
		fileManager: fm,
	}, nil
}

// EntryPath returns the file that holds the entry for key.
func (s *FileCacheStore) EntryPath(key models.ResourceKey) string {
	return filepath.Join(s.baseDir, key.String())
}

// Load implements CacheStore.
func (s *FileCacheStore) Load(ctx context.Context, key models.ResourceKey) (*models.CacheEntry, error) {
	path := s.EntryPath(key)
	if err := ctx.Err(); err != nil {
		return nil, &StoreReadError{Key: key.String(), Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &StoreReadError{Key: key.String(), Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &StoreReadError{Key: key.String(), Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &StoreReadError{Key: key.String(), Path: path, Err: errors.New("entry is not a regular file")}
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, &StoreReadError{Key: key.String(), Path: path, Err: err}
	}

	s.logger.Debug().Str("key", key.String()).Int("bytes", len(content)).Msg("Loaded cache entry")
	return &models.CacheEntry{
		Key:       key,
		Content:   content,
		UpdatedAt: info.ModTime(),
	}, nil
}

// Save implements CacheStore.
func (s *FileCacheStore) Save(ctx context.Context, key models.ResourceKey, content []byte) error {
	path := s.EntryPath(key)
	if err := s.fileManager.WriteFileAtomic(ctx, path, content, 0644); err != nil {
		return &StoreWriteError{Key: key.String(), Path: path, Err: err}
	}
	s.logger.Debug().Str("key", key.String()).Int("bytes", len(content)).Msg("Saved cache entry")
	return nil
}

// Close implements CacheStore. The file store holds no open handles.
func (s *FileCacheStore) Close() error {
	return nil
}
