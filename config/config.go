package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Seed      SeedConfig      `yaml:"seed"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
// Driver is "sqlite" (default) or "postgres".
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// SeedConfig controls the idempotent demo-data seeding run at startup.
type SeedConfig struct {
	Enabled      bool `yaml:"enabled"`
	HistoryHours int  `yaml:"history_hours"`
	StepMinutes  int  `yaml:"step_minutes"`
}

// SimulatorConfig holds the simulated-reading generator configuration.
type SimulatorConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	cfg.Seed.Enabled = true
	cfg.Simulator.Enabled = true

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present: seeding and
// the simulated-update loop are on, so a bare startup serves live data. Only
// an explicit `enabled: false` in a config file turns them off.
func Default() *Config {
	cfg := &Config{}
	cfg.Seed.Enabled = true
	cfg.Simulator.Enabled = true
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-valued fields. Exposed so tests can build
// configs without a file on disk.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	// A negative TTL disables the latest-feed response cache.
	if cfg.Server.CacheTTLSeconds == 0 {
		cfg.Server.CacheTTLSeconds = 10
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "./database.sqlite"
	}

	if cfg.Seed.HistoryHours <= 0 {
		cfg.Seed.HistoryHours = 24
	}
	if cfg.Seed.StepMinutes <= 0 {
		cfg.Seed.StepMinutes = 30
	}

	if cfg.Simulator.IntervalSeconds <= 0 {
		cfg.Simulator.IntervalSeconds = 30
	}
	cfg.Simulator.Interval = time.Duration(cfg.Simulator.IntervalSeconds) * time.Second
}
