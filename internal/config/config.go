// Package config loads adaptlearn settings from defaults, a YAML config
// file, ADAPTLEARN_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/adaptlearn/internal/content"
	"github.com/abhisek/adaptlearn/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. ADAPTLEARN_STORE_BACKEND.
const EnvPrefix = "ADAPTLEARN"

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendCSV    = "csv"
)

// Config holds all adaptlearn configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Content ContentConfig `yaml:"content"`
	Catalog CatalogConfig `yaml:"catalog"`
	Server  ServerConfig  `yaml:"server"`
}

// LogConfig selects the logger. Mode: "dev", "prod" or "quiet".
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// StoreConfig selects where progress is kept.
type StoreConfig struct {
	Backend     string `yaml:"backend"`      // sqlite or csv
	DB          string `yaml:"db"`           // SQLite path; empty uses the XDG default
	CSV         string `yaml:"csv"`          // CSV path
	CatalogSize int    `yaml:"catalog_size"` // Materials per subject for completion rate
}

// ContentConfig tunes the adaptive content generator.
type ContentConfig struct {
	SubjectPolicy string        `yaml:"subject_policy"` // strict or substitute
	Seed          int64         `yaml:"seed"`           // 0 seeds from the clock
	CacheTTL      time.Duration `yaml:"cache_ttl"`
}

// CatalogConfig points at an optional catalog override file.
type CatalogConfig struct {
	File string `yaml:"file"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Mode: "quiet"},
		Store: StoreConfig{
			Backend:     BackendSQLite,
			CSV:         "student_progress.csv",
			CatalogSize: store.DefaultCatalogSize,
		},
		Content: ContentConfig{
			SubjectPolicy: content.PolicyStrict.String(),
			CacheTTL:      content.DefaultCacheTTL,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// SetDefaults registers DefaultConfig's values with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.db", d.Store.DB)
	v.SetDefault("store.csv", d.Store.CSV)
	v.SetDefault("store.catalog_size", d.Store.CatalogSize)
	v.SetDefault("content.subject_policy", d.Content.SubjectPolicy)
	v.SetDefault("content.seed", d.Content.Seed)
	v.SetDefault("content.cache_ttl", d.Content.CacheTTL)
	v.SetDefault("catalog.file", d.Catalog.File)
	v.SetDefault("server.addr", d.Server.Addr)
}

// New creates a viper instance with defaults and environment binding,
// and reads cfgFile, or config.yaml from DefaultDir when cfgFile is empty.
// A missing default config file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return v, nil
		}
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// FromViper builds a Config from v.
func FromViper(v *viper.Viper) Config {
	return Config{
		Log: LogConfig{Mode: v.GetString("log.mode")},
		Store: StoreConfig{
			Backend:     strings.ToLower(v.GetString("store.backend")),
			DB:          v.GetString("store.db"),
			CSV:         v.GetString("store.csv"),
			CatalogSize: v.GetInt("store.catalog_size"),
		},
		Content: ContentConfig{
			SubjectPolicy: v.GetString("content.subject_policy"),
			Seed:          v.GetInt64("content.seed"),
			CacheTTL:      v.GetDuration("content.cache_ttl"),
		},
		Catalog: CatalogConfig{File: v.GetString("catalog.file")},
		Server:  ServerConfig{Addr: v.GetString("server.addr")},
	}
}

// Load is New followed by FromViper and Validate.
func Load(cfgFile string) (Config, *viper.Viper, error) {
	v, err := New(cfgFile)
	if err != nil {
		return Config{}, nil, err
	}
	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, v, nil
}

// DefaultDir returns $XDG_CONFIG_HOME/adaptlearn, falling back to
// ~/.config/adaptlearn.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "adaptlearn"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "adaptlearn"), nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite:
	case BackendCSV:
		if c.Store.CSV == "" {
			return fmt.Errorf("store.csv is required for the csv backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	if c.Store.CatalogSize < 1 {
		return fmt.Errorf("store.catalog_size must be positive, got %d", c.Store.CatalogSize)
	}
	if _, err := content.ParsePolicy(c.Content.SubjectPolicy); err != nil {
		return fmt.Errorf("content.subject_policy: %w", err)
	}
	if c.Content.CacheTTL < 0 {
		return fmt.Errorf("content.cache_ttl must not be negative")
	}
	switch strings.ToLower(c.Log.Mode) {
	case "dev", "development", "prod", "production", "quiet":
	default:
		return fmt.Errorf("unknown log mode: %q", c.Log.Mode)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
