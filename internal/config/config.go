package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "campaign.cfg.json"

// FileConfig holds JSON-file storage backend settings
type FileConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PostgresConfig holds PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// KeysConfig names the durable slot of each collection
type KeysConfig struct {
	Campaigns string `json:"campaigns" mapstructure:"campaigns"`
	Battles   string `json:"battles" mapstructure:"battles"`
	Forces    string `json:"forces" mapstructure:"forces"`
	Units     string `json:"units" mapstructure:"units"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"`
	File     FileConfig     `json:"file" mapstructure:"file"`
	SQLite   SQLiteConfig   `json:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"postgres" mapstructure:"postgres"`
	Keys     KeysConfig     `json:"keys" mapstructure:"keys"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// SetDefaults registers every default value. Load calls it; callers that
// run without a config file call it directly.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("storage.type", "file")
	viper.SetDefault("storage.file.dir", "./campaign-data")
	viper.SetDefault("storage.file.compress", false)
	viper.SetDefault("storage.sqlite.path", "./campaign.db")

	viper.SetDefault("storage.postgres.host", "localhost")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.username", "postgres")
	viper.SetDefault("storage.postgres.password", "postgres")
	viper.SetDefault("storage.postgres.database", "campaigns")

	viper.SetDefault("storage.keys.campaigns", "campaigns")
	viper.SetDefault("storage.keys.battles", "battles")
	viper.SetDefault("storage.keys.forces", "chaos-campaign-forces")
	viper.SetDefault("storage.keys.units", "chaos-campaign-units")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "campaignctl")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage section.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		File: FileConfig{
			Dir:      viper.GetString("storage.file.dir"),
			Compress: viper.GetBool("storage.file.compress"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("storage.postgres.host"),
			Port:     viper.GetString("storage.postgres.port"),
			Username: viper.GetString("storage.postgres.username"),
			Password: viper.GetString("storage.postgres.password"),
			Database: viper.GetString("storage.postgres.database"),
		},
		Keys: KeysConfig{
			Campaigns: viper.GetString("storage.keys.campaigns"),
			Battles:   viper.GetString("storage.keys.battles"),
			Forces:    viper.GetString("storage.keys.forces"),
			Units:     viper.GetString("storage.keys.units"),
		},
	}
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}
