// Package postgres implements the storage.Backend interface using
// GORM/PostgreSQL. Slots are rows of a single table, so several machines
// can point at one database; writes are last-write-wins per slot.
package postgres

import (
	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/database"
	gormstorage "github.com/chaoscampaign/tracker/internal/storage/gorm"

	"github.com/rs/zerolog"
)

// Backend wraps the GORM backend with a PostgreSQL connection.
type Backend struct {
	*gormstorage.Backend
	mgr *database.Manager
	cfg config.PostgresConfig
}

// New creates a new PostgreSQL storage backend. The connection is opened by Init.
func New(cfg config.PostgresConfig, log zerolog.Logger) *Backend {
	mgr := database.NewManager(log)
	return &Backend{
		Backend: gormstorage.New(mgr),
		mgr:     mgr,
		cfg:     cfg,
	}
}

// Init connects to the database and runs schema migration.
func (b *Backend) Init() error {
	if err := b.mgr.ConnectPostgres(b.cfg); err != nil {
		return err
	}
	return b.Backend.Init()
}
