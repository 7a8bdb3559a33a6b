// internal/storage/memory/memory.go
package memory

import (
	"sync"

	"github.com/chaoscampaign/tracker/internal/storage"
)

// Backend keeps slots in process memory. Nothing survives the process; it
// backs tests and dry runs.
type Backend struct {
	slots  map[string][]byte
	saves  map[string]int
	closed bool
	mu     sync.RWMutex
}

// New creates a new memory backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the backend
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.slots == nil {
		b.slots = make(map[string][]byte)
		b.saves = make(map[string]int)
	}
	b.closed = false
	return nil
}

// Close marks the backend unusable. Slots are kept so a re-Init sees them,
// which is how tests simulate a new session.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	return nil
}

// Load returns a copy of the slot under key.
func (b *Backend) Load(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.slots == nil || b.closed {
		return nil, false, storage.ErrNotInitialized
	}
	payload, ok := b.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

// Save replaces the slot under key with a copy of payload.
func (b *Backend) Save(key string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.slots == nil || b.closed {
		return storage.ErrNotInitialized
	}
	b.slots[key] = append([]byte(nil), payload...)
	b.saves[key]++
	return nil
}

// Saves reports how many times key has been written.
func (b *Backend) Saves(key string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.saves[key]
}

// Keys returns the number of slots that hold a payload.
func (b *Backend) Keys() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.slots)
}
