package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const cacheEntriesSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key TEXT PRIMARY KEY,
	content BLOB NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// SQLiteCacheStore keeps entries in a single SQLite table keyed by resource key.
type SQLiteCacheStore struct {
	db     *sql.DB
	path   string
	logger zerolog.Logger
	now    func() time.Time
}

// NewSQLiteCacheStore opens (or creates) the database and ensures the schema.
func NewSQLiteCacheStore(dataSourceName string, logger zerolog.Logger) (*SQLiteCacheStore, error) {
	logger = logger.With().Str("component", "SQLiteCacheStore").Logger()

	if dataSourceName == "" {
		return nil, errors.New("sqlite path is required")
	}
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// a single connection serialises writers and avoids SQLITE_BUSY within the process
	db.SetMaxOpenConns(1)

	store := &SQLiteCacheStore{
		db:     db,
		path:   dataSourceName,
		logger: logger,
		now:    time.Now,
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Debug().Str("path", dataSourceName).Msg("Cache database initialized")
	return store, nil
}

func (s *SQLiteCacheStore) initSchema() error {
	if _, err := s.db.Exec(cacheEntriesSchema); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create cache_entries table")
		return err
	}
	return nil
}

// Load implements CacheStore.
func (s *SQLiteCacheStore) Load(ctx context.Context, key models.ResourceKey) (*models.CacheEntry, error) {
	var content []byte
	var updatedAt time.Time

	err := s.db.QueryRowContext(ctx,
		`SELECT content, updated_at FROM cache_entries WHERE key = ?`, key.String(),
	).Scan(&content, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreReadError{Key: key.String(), Path: s.path, Err: err}
	}
	if content == nil {
		content = []byte{}
	}

	return &models.CacheEntry{
		Key:       key,
		Content:   content,
		UpdatedAt: updatedAt,
	}, nil
}

// Save implements CacheStore with a single upsert inside a transaction.
func (s *SQLiteCacheStore) Save(ctx context.Context, key models.ResourceKey, content []byte) error {
	wrap := func(err error) error {
		return &StoreWriteError{Key: key.String(), Path: s.path, Err: err}
	}
	if content == nil {
		content = []byte{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cache_entries (key, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		key.String(), content, s.now().UTC(),
	)
	if err != nil {
		_ = tx.Rollback()
		return wrap(err)
	}

	if err := tx.Commit(); err != nil {
		return wrap(err)
	}
	s.logger.Debug().Str("key", key.String()).Int("bytes", len(content)).Msg("Saved cache entry")
	return nil
}

// Close closes the database connection.
func (s *SQLiteCacheStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
