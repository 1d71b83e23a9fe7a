package models

import "time"

// ResourceKey is the lowercase hex SHA-256 digest of a resource identifier.
// It addresses the persisted entry and is never shown to users.
type ResourceKey string

// String returns the key as a plain string
func (k ResourceKey) String() string {
	return string(k)
}

// CacheEntry holds the last known content observed for a resource.
type CacheEntry struct {
	Key     ResourceKey
	Content []byte
	// UpdatedAt is diagnostic only and plays no part in classification.
	UpdatedAt time.Time
}
