// internal/storage/storage_test.go
package storage_test

import (
	"testing"

	"github.com/chaoscampaign/tracker/internal/storage"
	"github.com/chaoscampaign/tracker/internal/storage/file"
	"github.com/chaoscampaign/tracker/internal/storage/memory"
	sqlitestorage "github.com/chaoscampaign/tracker/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
)

// Compile-time interface checks
var (
	_ storage.Backend    = (*memory.Backend)(nil)
	_ storage.Backend    = (*file.Backend)(nil)
	_ storage.Backend    = (*sqlitestorage.Backend)(nil)
	_ storage.Backupable = (*sqlitestorage.Backend)(nil)
)

func TestBackupableIsOptional(t *testing.T) {
	var b storage.Backend = memory.New()
	_, ok := b.(storage.Backupable)
	assert.False(t, ok)
}
