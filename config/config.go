// Package config loads the simulator's TOML configuration file: cache
// shape, memory size, cycle clock, and debugger history depth.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/rv32x/qcpu-sim/cache"
)

// Config holds every tunable of a simulation run that isn't a one-off CLI
// flag: cache shape, cycle clock, memory size, and the
// debugger's step-back depth.
type Config struct {
	Cache struct {
		IndexBits int    `toml:"index_bits"`
		WayBits   int    `toml:"way_bits"`
		Policy    string `toml:"policy"` // lru, sc, fifo
	} `toml:"cache"`

	Memory struct {
		SizeBytes uint32 `toml:"size_bytes"`
	} `toml:"memory"`

	Cycle struct {
		ClockMHz float64 `toml:"clock_mhz"`
	} `toml:"cycle"`

	Debugger struct {
		HistoryDepth int `toml:"history_depth"`
	} `toml:"debugger"`
}

// DefaultConfig returns the configuration a run uses when no file is
// present: a single direct-mapped word cache, 2 MiB of memory, 122 MHz.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Cache.IndexBits = 6
	cfg.Cache.WayBits = 0
	cfg.Cache.Policy = "lru"
	cfg.Memory.SizeBytes = 2 * 1024 * 1024
	cfg.Cycle.ClockMHz = 122
	cfg.Debugger.HistoryDepth = 1000
	return cfg
}

// GetConfigPath returns the platform-specific config file path, creating
// its parent directory if needed.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "qcpu-sim")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "qcpu-sim")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load reads configuration from the default config path, falling back to
// DefaultConfig when the file does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes configuration to path in TOML form.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// CachePolicy maps the config's textual policy name to a cache.Policy
// value understood by the rest of the simulator.
func (c *Config) CachePolicy() (cache.Policy, error) {
	switch c.Cache.Policy {
	case "lru":
		return cache.LRU, nil
	case "sc":
		return cache.SC, nil
	case "fifo":
		return cache.FIFO, nil
	default:
		return 0, fmt.Errorf("unknown cache policy %q (want lru, sc, or fifo)", c.Cache.Policy)
	}
}
