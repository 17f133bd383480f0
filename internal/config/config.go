// Package config loads runtime settings from the environment, with an
// optional .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/pable/go-ipl-metrics/internal/logging"
)

// DefaultBatchSize is how many deliveries are buffered before a bulk insert.
const DefaultBatchSize = 1000

type Config struct {
	// DBPath is the SQLite database file. Empty means ~/.iplmetrics/ipl.db.
	DBPath    string `env:"IPL_DB_PATH" env-default:""`
	LogLevel  string `env:"IPL_LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"IPL_LOG_FORMAT" env-default:"console"`
	BatchSize int    `env:"IPL_BATCH_SIZE" env-default:"1000"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(userHome(), ".iplmetrics", "ipl.db")
	}
	return cfg, nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

func (c *Config) validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("IPL_BATCH_SIZE must be > 0, got %d", c.BatchSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("IPL_LOG_LEVEL: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("IPL_LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
