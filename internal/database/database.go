package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Manager handles database connections and operations.
type Manager struct {
	DB     *gorm.DB
	SqlDB  *sql.DB
	Logger zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		Logger: log,
	}
}

// ConnectSqlite opens (creating if needed) the SQLite file at path.
func (m *Manager) ConnectSqlite(path string) error {
	db, err := GetSqliteDB(path, m.Logger)
	if err != nil {
		return fmt.Errorf("failed to open SQLite DB: %w", err)
	}
	m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	return m.attach(db)
}

// ConnectPostgres opens a PostgreSQL connection and validates it.
func (m *Manager) ConnectPostgres(cfg config.PostgresConfig) error {
	db, err := GetPostgresDB(cfg, m.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := m.attach(db); err != nil {
		return err
	}
	if err := m.SqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}
	m.SqlDB.SetMaxOpenConns(10)
	m.Logger.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Connected to database")
	return nil
}

func (m *Manager) attach(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	m.DB = db
	m.SqlDB = sqlDB
	return nil
}

// Setup migrates tables and records the store info row if it doesn't exist.
func (m *Manager) Setup() error {
	if m.DB == nil {
		return fmt.Errorf("database not connected")
	}

	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	var count int64
	if err := m.DB.Model(&model.StoreInfo{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to read store_infos: %w", err)
	}
	if count == 0 {
		err := m.DB.Create(&model.StoreInfo{
			Application: "campaignctl",
			Schema:      model.CurrentSchema,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to create store_infos entry: %w", err)
		}
	}

	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	err := m.SqlDB.Close()
	m.SqlDB = nil
	m.DB = nil
	return err
}

// Backup vacuums the SQLite database into a standalone file.
func (m *Manager) Backup(path string) error {
	if m.DB == nil {
		return fmt.Errorf("database not connected")
	}
	if m.DB.Dialector.Name() != "sqlite" {
		return fmt.Errorf("backup is only supported for sqlite, not %s", m.DB.Dialector.Name())
	}

	start := time.Now()
	if err := VacuumInto(m.DB, path); err != nil {
		return err
	}

	m.Logger.Debug().Dur("duration", time.Since(start)).Str("path", path).Msg("Backed up DB to disk")
	return nil
}

// GetPostgresDB returns a connection to the Postgres database.
func GetPostgresDB(cfg config.PostgresConfig, log zerolog.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
	)

	log.Debug().Str("host", cfg.Host).Str("port", cfg.Port).Msg("Connecting to Postgres DB")

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 NewGormLogger(log, slowThreshold),
	})
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func GetSqliteDB(path string, log zerolog.Logger) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 NewGormLogger(log, slowThreshold),
	})
	if err != nil {
		return nil, err
	}

	// set PRAGMAS
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA cache_size = -8000;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// VacuumInto writes a point-in-time copy of the database to a disk file,
// replacing any file already there.
func VacuumInto(db *gorm.DB, sqliteFilePath string) error {
	if sqliteFilePath == "" {
		return fmt.Errorf("sqlite file path not set")
	}

	// remove existing file if it exists
	if exists, err := os.Stat(sqliteFilePath); err == nil && exists != nil {
		if err := os.Remove(sqliteFilePath); err != nil {
			return fmt.Errorf("error removing existing DB file: %w", err)
		}
	}

	if err := db.Exec("VACUUM INTO ?", sqliteFilePath).Error; err != nil {
		return fmt.Errorf("error dumping DB to disk: %w", err)
	}

	return nil
}
