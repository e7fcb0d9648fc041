package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Storage     StorageConfig     `toml:"storage"`
	Collections CollectionsConfig `toml:"collections"`
	Albums      AlbumsConfig      `toml:"albums"`
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
}

// DatabaseConfig contains SQLite connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// StorageConfig selects the key-value backend collections are persisted to.
type StorageConfig struct {
	Driver      string   `toml:"driver"`
	FSRoot      string   `toml:"fs_root"`
	PostgresDSN string   `toml:"postgres_dsn"`
	S3          S3Config `toml:"s3"`
}

// S3Config contains S3-compatible object storage settings.
type S3Config struct {
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	PathStyle bool   `toml:"path_style"`
	Prefix    string `toml:"prefix"`
}

// CollectionsConfig names the store keys each collection is written under.
type CollectionsConfig struct {
	AlbumsKey    string `toml:"albums_key"`
	FavoritesKey string `toml:"favorites_key"`
}

// AlbumsConfig bounds album release years.
type AlbumsConfig struct {
	MinYear int `toml:"min_year"`
	MaxYear int `toml:"max_year"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Addr returns host:port for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate reports configuration values no component can work with.
func (c *Config) Validate() error {
	if c.Albums.MinYear > c.Albums.MaxYear {
		return fmt.Errorf("%w: albums.min_year %d is after albums.max_year %d", ErrInvalidConfig, c.Albums.MinYear, c.Albums.MaxYear)
	}
	if c.Collections.AlbumsKey == "" || c.Collections.FavoritesKey == "" {
		return fmt.Errorf("%w: collection keys must not be empty", ErrInvalidConfig)
	}
	if c.Collections.AlbumsKey == c.Collections.FavoritesKey {
		return fmt.Errorf("%w: collections must use distinct keys", ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides storage settings from CRATE_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CRATE_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("CRATE_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("CRATE_POSTGRES_DSN"); v != "" {
		c.Storage.PostgresDSN = v
	}
	if v := os.Getenv("CRATE_S3_BUCKET"); v != "" {
		c.Storage.S3.Bucket = v
	}
}

// ExampleConfig returns the embedded config template.
func ExampleConfig() string {
	return string(exampleConf)
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
