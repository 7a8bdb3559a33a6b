package main

import (
	"fmt"
	"log/slog"

	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/storage"
	"github.com/chaoscampaign/tracker/internal/storage/file"
	"github.com/chaoscampaign/tracker/internal/storage/memory"
	pgstorage "github.com/chaoscampaign/tracker/internal/storage/postgres"
	sqlitestorage "github.com/chaoscampaign/tracker/internal/storage/sqlite"
	"github.com/chaoscampaign/tracker/internal/store"

	"github.com/rs/zerolog"
)

func createStorageBackend(storageCfg config.StorageConfig, dbLogger zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		return pgstorage.New(storageCfg.Postgres, dbLogger), nil

	case "sqlite":
		return sqlitestorage.New(storageCfg.SQLite, dbLogger), nil

	case "file", "":
		return file.New(storageCfg.File), nil

	case "memory":
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}

// collections holds one store per durable slot.
type collections struct {
	units     *store.UnitStore
	forces    *store.ForceStore
	campaigns *store.CampaignStore
	battles   *store.BattleStore
}

func openStores(backend storage.Backend, keys config.KeysConfig, logger *slog.Logger) (*collections, error) {
	deps := func(key string) store.Dependencies {
		return store.Dependencies{Backend: backend, Key: key, Logger: logger}
	}

	var (
		c   collections
		err error
	)
	if c.units, err = store.NewUnitStore(deps(keys.Units)); err != nil {
		return nil, err
	}
	if c.forces, err = store.NewForceStore(deps(keys.Forces)); err != nil {
		return nil, err
	}
	if c.campaigns, err = store.NewCampaignStore(deps(keys.Campaigns)); err != nil {
		return nil, err
	}
	if c.battles, err = store.NewBattleStore(deps(keys.Battles)); err != nil {
		return nil, err
	}
	return &c, nil
}
