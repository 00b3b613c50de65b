// Package config loads process configuration from COMPENDIUM_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "COMPENDIUM"

// Config is the full process configuration.
type Config struct {
	Log
	Packs
	Settings
	Server
	Browser
}

// Log configures the zap logger.
type Log struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	File       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"50" validate:"gte=1"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3" validate:"gte=0"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"28" validate:"gte=0"`
}

// Packs locates content packs and their load defaults.
type Packs struct {
	Dir         string        `envconfig:"PACKS_DIR" default:"packs" validate:"required"`
	Defaults    string        `envconfig:"PACK_DEFAULTS"`
	Concurrency int           `envconfig:"PACK_CONCURRENCY" default:"4" validate:"gte=1,lte=64"`
	Watch       bool          `envconfig:"PACK_WATCH" default:"false"`
	Debounce    time.Duration `envconfig:"PACK_WATCH_DEBOUNCE" default:"500ms"`
}

// Settings chooses the pack settings store. An empty DSN keeps settings in
// memory.
type Settings struct {
	DSN string `envconfig:"SETTINGS_DSN"`
}

// Server configures the MCP transport.
type Server struct {
	Transport string `envconfig:"TRANSPORT" default:"stdio" validate:"oneof=stdio http"`
	Addr      string `envconfig:"ADDR" default:":8080" validate:"required_if=Transport http"`
}

// Browser configures the session the server acts as.
type Browser struct {
	Locale       string `envconfig:"LOCALE" default:"en" validate:"required"`
	Catalog      string `envconfig:"CATALOG"`
	GM           bool   `envconfig:"GM" default:"true"`
	CampaignType string `envconfig:"CAMPAIGN_TYPE" default:"none"`
	ResultLimit  int    `envconfig:"RESULT_LIMIT" default:"100" validate:"gte=1"`
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
