package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ConfigFileName is the project config file quill looks for in the working directory.
const ConfigFileName = "quill.config.json"

// DefaultSQLiteURL is used when the provider is sqlite and no database URL is set.
const DefaultSQLiteURL = "sqlite://quill.db"

type Config struct {
	Version        string   `json:"version" mapstructure:"version"`
	MigrationsPath string   `json:"migrations_path" mapstructure:"migrations_path"`
	BackupPath     string   `json:"backup_path" mapstructure:"backup_path"`
	Database       Database `json:"database" mapstructure:"database"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// DefaultConfig returns the config written by 'quill init'.
func DefaultConfig() *Config {
	return &Config{
		Version:        "1",
		MigrationsPath: "db/migrations",
		BackupPath:     "db_backup",
		Database: Database{
			Provider: "sqlite",
			URLEnv:   "DATABASE_URL",
		},
	}
}

// Load unmarshals the viper-managed config and fills in defaults for any
// missing fields.
func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "db/migrations"
	}
	if cfg.BackupPath == "" {
		cfg.BackupPath = "db_backup"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "sqlite"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}

	return &cfg, nil
}

// GetDatabaseURL resolves the connection URL from the configured environment
// variable. SQLite projects fall back to a local file URL so a fresh
// 'quill init' works without any environment setup.
func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL != "" {
		return dbURL, nil
	}

	switch c.Database.Provider {
	case "postgresql", "postgres":
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	default:
		return DefaultSQLiteURL, nil
	}
}

func (c *Config) Validate() error {
	if c.MigrationsPath == "" {
		return fmt.Errorf("migrations_path cannot be empty")
	}
	if c.BackupPath == "" {
		return fmt.Errorf("backup_path cannot be empty")
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.MigrationsPath, c.BackupPath}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// IsInitialized reports whether a quill config file exists in the working directory.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// InitializeProject writes the default config file and creates the project
// directories. It fails if the project is already initialized.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized: %s exists", ConfigFileName)
	}

	cfg := DefaultConfig()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(ConfigFileName, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg.EnsureDirectories()
}
