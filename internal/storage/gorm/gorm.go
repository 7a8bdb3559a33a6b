// Package gormstorage implements the storage.Backend interface on top of a
// gorm connection. Each slot is one row of the slots table; sqlite and
// postgres differ only in how the connection is opened.
package gormstorage

import (
	"errors"
	"fmt"

	"github.com/chaoscampaign/tracker/internal/database"
	"github.com/chaoscampaign/tracker/internal/model"
	"github.com/chaoscampaign/tracker/internal/storage"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Backend implements storage.Backend using GORM.
type Backend struct {
	db      *database.Manager
	dbReady bool
}

// New creates a new GORM storage backend. The manager must be connected
// before Init is called.
func New(db *database.Manager) *Backend {
	return &Backend{db: db}
}

// Init runs schema migration.
func (b *Backend) Init() error {
	if err := b.db.Setup(); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.dbReady = true
	return nil
}

// Close closes the connection.
func (b *Backend) Close() error {
	b.dbReady = false
	return b.db.Close()
}

// Load reads the slot row for key.
func (b *Backend) Load(key string) ([]byte, bool, error) {
	if !b.dbReady {
		return nil, false, storage.ErrNotInitialized
	}

	var slot model.Slot
	err := b.db.DB.Take(&slot, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load slot %q: %w", key, err)
	}
	return []byte(slot.Payload), true, nil
}

// Save inserts or replaces the slot row for key.
func (b *Backend) Save(key string, payload []byte) error {
	if !b.dbReady {
		return storage.ErrNotInitialized
	}

	slot := model.Slot{Key: key, Payload: datatypes.JSON(payload)}
	err := b.db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to save slot %q: %w", key, err)
	}
	return nil
}

// Manager exposes the connection for backend-specific operations.
func (b *Backend) Manager() *database.Manager {
	return b.db
}
