package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all the necessary configuration for an App instance to run.
// Environment variables provide the defaults; CLI flags override them.
type Config struct {
	// PluginsPath is a directory (or single file) of .hcl plugin manifests.
	PluginsPath string `env:"PLUGRID_PLUGINS_PATH"`
	// TiersPath is the HCL tier catalog file.
	TiersPath string `env:"PLUGRID_TIERS_PATH"`
	// RegistryURL, when set, is a plugin registry whose JSON index is
	// merged with the locally discovered manifests.
	RegistryURL string `env:"PLUGRID_REGISTRY_URL"`

	LogFormat string `env:"PLUGRID_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"PLUGRID_LOG_LEVEL" envDefault:"info"`

	// Strict makes any non-empty issue list fatal. Without it, issues are
	// reported and the load order (when one exists) is still printed.
	Strict bool `env:"PLUGRID_STRICT"`
	// NoColor forces plain report output.
	NoColor bool `env:"PLUGRID_NO_COLOR"`
}

// FromEnv builds a Config populated from PLUGRID_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewConfig validates a fully assembled configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TiersPath == "" {
		return nil, errors.New("TiersPath is a required configuration field and cannot be empty")
	}
	if cfg.PluginsPath == "" && cfg.RegistryURL == "" {
		return nil, errors.New("at least one manifest source (PluginsPath or RegistryURL) is required")
	}
	return &cfg, nil
}
