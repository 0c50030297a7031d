package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreFlatFile = "flatfile"
	StoreSQLite   = "sqlite"
)

// Config holds the runtime settings of the bankbook binary
type Config struct {
	Store      string `env:"BANK_STORE" envDefault:"flatfile" validate:"oneof=flatfile sqlite"`
	DataFile   string `env:"BANK_DATA_FILE" envDefault:"accounts.txt" validate:"required_if=Store flatfile"`
	SQLitePath string `env:"BANK_SQLITE_PATH" envDefault:"accounts.db" validate:"required_if=Store sqlite"`
	LogLevel   string `env:"BANK_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFile    string `env:"BANK_LOG_FILE" envDefault:"bankbook.log" validate:"required"`
	AutoLoad   bool   `env:"BANK_AUTOLOAD" envDefault:"false"`
}

// Load reads configuration from the environment
// Variables from envFile are applied first when the file exists; variables already
// set in the environment take precedence.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings, e.g. after command-line overrides
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
