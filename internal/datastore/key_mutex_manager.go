package datastore

import (
	"sync"

	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// KeyMutexManager hands out one mutex per resource key so concurrent cycles
// for the same resource run one at a time within the process.
type KeyMutexManager struct {
	mutexes map[models.ResourceKey]*sync.Mutex
	mapLock sync.RWMutex
	logger  zerolog.Logger
}

// NewKeyMutexManager creates a new key mutex manager
func NewKeyMutexManager(logger zerolog.Logger) *KeyMutexManager {
	return &KeyMutexManager{
		mutexes: make(map[models.ResourceKey]*sync.Mutex),
		logger:  logger.With().Str("component", "KeyMutexManager").Logger(),
	}
}

// GetMutex returns the mutex for key, creating it on first use
func (m *KeyMutexManager) GetMutex(key models.ResourceKey) *sync.Mutex {
	m.mapLock.RLock()
	mutex, exists := m.mutexes[key]
	m.mapLock.RUnlock()

	if exists {
		return mutex
	}

	m.mapLock.Lock()
	defer m.mapLock.Unlock()

	// Double-check after acquiring write lock
	if mutex, exists := m.mutexes[key]; exists {
		return mutex
	}

	mutex = &sync.Mutex{}
	m.mutexes[key] = mutex
	m.logger.Trace().Str("key", key.String()).Int("mutexes", len(m.mutexes)).Msg("Created key mutex")
	return mutex
}
