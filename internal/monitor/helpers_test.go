package monitor

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aleister1102/urlchecker/internal/datastore"
	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/aleister1102/urlchecker/internal/models"
)

// memoryCacheStore is an in-memory CacheStore with injectable failures
type memoryCacheStore struct {
	mu      sync.Mutex
	entries map[models.ResourceKey][]byte
	loadErr error
	saveErr error
	loads   int
	saves   int
}

func newMemoryCacheStore() *memoryCacheStore {
	return &memoryCacheStore{entries: make(map[models.ResourceKey][]byte)}
}

func (s *memoryCacheStore) Load(_ context.Context, key models.ResourceKey) (*models.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.loadErr != nil {
		return nil, &datastore.StoreReadError{Key: key.String(), Path: "memory", Err: s.loadErr}
	}
	content, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &models.CacheEntry{Key: key, Content: bytes.Clone(content), UpdatedAt: time.Now()}, nil
}

func (s *memoryCacheStore) Save(_ context.Context, key models.ResourceKey, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return &datastore.StoreWriteError{Key: key.String(), Path: "memory", Err: s.saveErr}
	}
	s.saves++
	s.entries[key] = bytes.Clone(content)
	return nil
}

func (s *memoryCacheStore) Close() error { return nil }

func (s *memoryCacheStore) content(identifier string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.entries[datastore.DeriveKey(identifier)]
	return c, ok
}

// stubEngine records calls and returns a fixed document
type stubEngine struct {
	calls []stubEngineCall
	err   error
}

type stubEngineCall struct {
	title    string
	previous []byte
	current  []byte
}

func (e *stubEngine) RenderContent(title string, previous, current []byte) (*models.DiffArtifact, error) {
	e.calls = append(e.calls, stubEngineCall{title: title, previous: previous, current: current})
	if e.err != nil {
		return nil, e.err
	}
	return &models.DiffArtifact{
		Document: []byte("diff"),
		Previous: differ.SplitLines(string(previous)),
		Current:  differ.SplitLines(string(current)),
		Filename: "diff.html",
	}, nil
}

var errBoom = errors.New("boom")
