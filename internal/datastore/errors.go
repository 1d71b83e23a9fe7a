package datastore

import "fmt"

// StoreReadError reports that a persisted entry exists but could not be read.
// A missing entry is not an error.
type StoreReadError struct {
	Key  string
	Path string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("failed to read cache entry %s at %s: %v", e.Key, e.Path, e.Err)
}

func (e *StoreReadError) Unwrap() error {
	return e.Err
}

// StoreWriteError reports that an entry could not be durably written.
// The previously stored entry, if any, is left intact.
type StoreWriteError struct {
	Key  string
	Path string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to write cache entry %s at %s: %v", e.Key, e.Path, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
