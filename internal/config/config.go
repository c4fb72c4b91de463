package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the data directory root.
const FileName = "tally.yaml"

// Storage drivers.
const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Household HouseholdConfig `yaml:"household"`
	Import    ImportConfig    `yaml:"import"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Git       GitConfig       `yaml:"git"`
	Log       LogConfig       `yaml:"log"`
}

// HouseholdConfig scopes every stored record.
type HouseholdConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ImportConfig selects the statement format and category rules.
type ImportConfig struct {
	Format    string `yaml:"format"`
	RulesFile string `yaml:"rules_file,omitempty"` // relative to the data dir; empty = built-in rules
}

// StorageConfig selects where committed records live.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSNEnv string `yaml:"dsn_env"` // environment variable holding the Postgres URL
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a tally.yaml file from disk. Missing fields take their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDir reads <dir>/tally.yaml.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the fields with a fixed set of values.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverCSV, DriverPostgres:
	default:
		return fmt.Errorf("invalid storage driver %q (want %s or %s)", c.Storage.Driver, DriverCSV, DriverPostgres)
	}
	if c.Storage.Driver == DriverPostgres && c.Household.ID == "" {
		return fmt.Errorf("household.id is required for the %s driver", DriverPostgres)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// RulesPath returns the absolute rules file path, or "" for built-in rules.
func (c *Config) RulesPath(dir string) string {
	if c.Import.RulesFile == "" {
		return ""
	}
	if filepath.IsAbs(c.Import.RulesFile) {
		return c.Import.RulesFile
	}
	return filepath.Join(dir, c.Import.RulesFile)
}

// Default returns a Config with sensible defaults for a new household.
func Default(householdID, householdName string) *Config {
	return &Config{
		Household: HouseholdConfig{
			ID:   householdID,
			Name: householdName,
		},
		Import: ImportConfig{
			Format: "rbc",
		},
		Storage: StorageConfig{
			Driver: DriverCSV,
			DSNEnv: "DATABASE_URL",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
