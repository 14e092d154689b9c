// Package config holds the runtime settings passed to every component.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jwulff/roster/internal/listener"
	"github.com/jwulff/roster/internal/poller"
	"github.com/jwulff/roster/internal/store"
	"gopkg.in/yaml.v3"
)

// Config is the full set of settings.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Listener ListenerConfig `yaml:"listener"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// StoreConfig selects where the collection is persisted.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	// Create an empty collection at startup if none exists.
	Create bool `yaml:"create"`
}

// ListenerConfig controls the ingestion listener.
type ListenerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Addr        string        `yaml:"addr"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// UIConfig controls the interactive loop.
type UIConfig struct {
	TickRate time.Duration `yaml:"tick_rate"`
}

// LogConfig controls the log file. An empty Path disables logging.
type LogConfig struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: store.BackendJSON,
			Path:    store.DefaultPath,
		},
		Listener: ListenerConfig{
			Enabled:     true,
			Addr:        listener.DefaultAddr,
			ReadTimeout: 2 * time.Second,
		},
		UI: UIConfig{
			TickRate: poller.DefaultTickRate,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  16,
			MaxBackups: 1,
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case store.BackendJSON, store.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path: must not be empty"))
	}
	if c.Listener.Enabled && c.Listener.Addr == "" {
		errs = append(errs, errors.New("listener.addr: must not be empty"))
	}
	if c.Listener.ReadTimeout < 0 {
		errs = append(errs, errors.New("listener.read_timeout: must not be negative"))
	}
	if c.UI.TickRate <= 0 {
		errs = append(errs, errors.New("ui.tick_rate: must be positive"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
