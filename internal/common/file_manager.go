package common

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileManager provides file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// EnsureDirectory creates path and its parents if missing
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return WrapErrorf(err, "failed to create directory %s", path)
	}
	return nil
}

// WriteFileAtomic replaces path with data. The bytes go to a temp file in the
// same directory which is synced, closed and renamed over path, so readers
// see either the old or the new content, never a partial write.
func (fm *FileManager) WriteFileAtomic(ctx context.Context, path string, data []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := fm.EnsureDirectory(dir, 0755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return WrapErrorf(err, "failed to create temp file in %s", dir)
	}
	tmpName := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return WrapErrorf(err, "failed to write temp file %s", tmpName)
	}
	if err := tmpFile.Sync(); err != nil {
		return WrapErrorf(err, "failed to sync temp file %s", tmpName)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return WrapErrorf(err, "failed to chmod temp file %s", tmpName)
	}
	if err := tmpFile.Close(); err != nil {
		return WrapErrorf(err, "failed to close temp file %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		committed = true
		return WrapErrorf(err, "failed to rename %s to %s", tmpName, path)
	}
	committed = true

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written atomically")
	return nil
}
