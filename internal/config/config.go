package config

import "strings"

// Config holds runtime configuration for the server.
type Config struct {
	Port    string        `env:"PORT"`
	Store   StoreConfig
	Seed    SeedConfig
	Metrics MetricsConfig
	Tracing TracingConfig
	Log     LogConfig
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER"`
	SQLitePath string `env:"SQLITE_PATH"`
}

// SeedConfig controls the catalog loaded at startup.
type SeedConfig struct {
	Path     string `env:"SEED_PATH"`
	Disabled bool   `env:"SEED_DISABLED"`
}

// LogConfig controls logger level and format.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := defaults()
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port: defaultPort,
		Store: StoreConfig{
			Driver:     defaultStoreDriver,
			SQLitePath: defaultSQLitePath,
		},
		Metrics: defaultMetrics(),
		Tracing: TracingConfig{ServiceName: defaultServiceName},
	}
}
