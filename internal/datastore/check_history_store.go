package datastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

const historyReadBatchSize = 100

// ErrCorruptHistory marks a history file that exists but is not readable parquet.
var ErrCorruptHistory = errors.New("corrupt history file")

// CheckHistoryStore records one row per check cycle.
type CheckHistoryStore interface {
	Append(ctx context.Context, record models.CheckHistoryRecord) error
	// List returns the newest records for key first; limit <= 0 means all.
	List(ctx context.Context, key models.ResourceKey, limit int) ([]models.CheckHistoryRecord, error)
}

// ParquetCheckHistoryStore keeps the history of each resource in
// <baseDir>/<key>.parquet, zstd compressed. Appending rewrites the file
// through a temp file so a crash never leaves a truncated history.
type ParquetCheckHistoryStore struct {
	baseDir     string
	maxRecords  int
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewParquetCheckHistoryStore creates a history store rooted at baseDir.
// maxRecords caps the rows kept per resource; 0 keeps everything.
func NewParquetCheckHistoryStore(baseDir string, maxRecords int, logger zerolog.Logger) (*ParquetCheckHistoryStore, error) {
	if baseDir == "" {
		return nil, common.NewValidationError("history_dir", baseDir, "history directory is required")
	}
	fm := common.NewFileManager(logger)
	if err := fm.EnsureDirectory(baseDir, 0755); err != nil {
		return nil, err
	}
	return &ParquetCheckHistoryStore{
		baseDir:     baseDir,
		maxRecords:  maxRecords,
		logger:      logger.With().Str("component", "CheckHistoryStore").Logger(),
		fileManager: fm,
	}, nil
}

func (s *ParquetCheckHistoryStore) historyPath(key string) string {
	return filepath.Join(s.baseDir, key+".parquet")
}

// Append adds record to the history file of record.Key.
func (s *ParquetCheckHistoryStore) Append(ctx context.Context, record models.CheckHistoryRecord) error {
	if record.Key == "" {
		return common.NewValidationError("key", record.Key, "history record needs a key")
	}
	path := s.historyPath(record.Key)

	records, err := s.readAll(ctx, path)
	if errors.Is(err, ErrCorruptHistory) {
		records, err = s.quarantine(path, err)
	}
	if err != nil {
		return err
	}
	records = append(records, record)
	if s.maxRecords > 0 && len(records) > s.maxRecords {
		records = records[len(records)-s.maxRecords:]
	}

	data, err := encodeHistory(records)
	if err != nil {
		return common.WrapErrorf(err, "failed to encode history for %s", record.Key)
	}
	if err := s.fileManager.WriteFileAtomic(ctx, path, data, 0644); err != nil {
		return err
	}

	s.logger.Debug().Str("key", record.Key).Int("records", len(records)).Msg("Check history updated")
	return nil
}

// List implements CheckHistoryStore.
func (s *ParquetCheckHistoryStore) List(ctx context.Context, key models.ResourceKey, limit int) ([]models.CheckHistoryRecord, error) {
	records, err := s.readAll(ctx, s.historyPath(key.String()))
	if err != nil {
		return nil, err
	}

	// rows are stored in append order
	slices.Reverse(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// quarantine moves an unreadable history file aside so appends can start a
// fresh history instead of failing on every cycle.
func (s *ParquetCheckHistoryStore) quarantine(path string, cause error) ([]models.CheckHistoryRecord, error) {
	corruptPath := path + ".corrupt"
	if err := os.Rename(path, corruptPath); err != nil {
		return nil, common.WrapErrorf(err, "failed to move aside corrupt history file %s", path)
	}
	s.logger.Warn().Err(cause).Str("path", corruptPath).Msg("Corrupt history file moved aside, starting a new history")
	return []models.CheckHistoryRecord{}, nil
}

func (s *ParquetCheckHistoryStore) readAll(ctx context.Context, path string) ([]models.CheckHistoryRecord, error) {
	osFile, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.CheckHistoryRecord{}, nil
		}
		return nil, common.WrapErrorf(err, "failed to open history file %s", path)
	}
	defer osFile.Close()

	stat, err := osFile.Stat()
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to stat history file %s", path)
	}
	if stat.Size() == 0 {
		return []models.CheckHistoryRecord{}, nil
	}

	pqFile, err := parquet.OpenFile(osFile, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCorruptHistory, path, err)
	}

	reader := parquet.NewGenericReader[models.CheckHistoryRecord](pqFile)
	defer reader.Close()

	records := make([]models.CheckHistoryRecord, 0, reader.NumRows())
	batch := make([]models.CheckHistoryRecord, historyReadBatchSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := reader.Read(batch)
		records = append(records, batch[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w %s: %w", ErrCorruptHistory, path, err)
		}
	}
	return records, nil
}

func encodeHistory(records []models.CheckHistoryRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[models.CheckHistoryRecord](&buf, parquet.Compression(&parquet.Zstd))
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
