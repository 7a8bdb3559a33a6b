// Package sqlitestorage implements the storage.Backend interface using a
// SQLite database file.
// It wraps the GORM backend via composition; the only SQLite-specific
// concerns are opening the file and point-in-time backups via VACUUM INTO.
package sqlitestorage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/database"
	gormstorage "github.com/chaoscampaign/tracker/internal/storage/gorm"

	"github.com/rs/zerolog"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	mgr *database.Manager
	cfg config.SQLiteConfig
}

// New creates a new SQLite storage backend. The file is opened by Init.
func New(cfg config.SQLiteConfig, log zerolog.Logger) *Backend {
	mgr := database.NewManager(log)
	return &Backend{
		Backend: gormstorage.New(mgr),
		mgr:     mgr,
		cfg:     cfg,
	}
}

// Init opens the database file and initializes the embedded GORM backend.
func (b *Backend) Init() error {
	if b.cfg.Path == "" {
		return fmt.Errorf("sqlite storage: database path not set")
	}
	if dir := filepath.Dir(b.cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	if err := b.mgr.ConnectSqlite(b.cfg.Path); err != nil {
		return err
	}
	return b.Backend.Init()
}

// Backup writes a point-in-time copy of every slot to path.
func (b *Backend) Backup(path string) error {
	return b.mgr.Backup(path)
}
