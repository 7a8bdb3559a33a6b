// internal/storage/storage.go
package storage

import "errors"

// ErrNotInitialized is returned when a backend is used before Init.
var ErrNotInitialized = errors.New("storage backend not initialized")

// Backend is the interface all storage implementations must satisfy.
// A backend holds one durable slot per key; each slot is an opaque payload
// that is replaced whole on every Save.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Load returns the payload last saved under key. ok is false when the
	// slot has never been written.
	Load(key string) (payload []byte, ok bool, err error)
	// Save replaces the slot under key.
	Save(key string, payload []byte) error
}

// Backupable is an optional interface for backends that can snapshot every
// slot into a single file.
type Backupable interface {
	Backup(path string) error
}
