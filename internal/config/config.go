// Package config loads environment configuration. A .env file in the
// working directory is honored when present; real environment variables
// win over it.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings.
type Config struct {
	// DBPath overrides the default state database location.
	DBPath string `env:"QUIZDECK_DB"`

	// MemoryOnly disables the sqlite store entirely and keeps state in
	// memory for the process lifetime. Useful for trying the app out.
	MemoryOnly bool `env:"QUIZDECK_MEMORY_ONLY"`
}

// Load reads configuration from .env (if present) and the environment.
func Load() (Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
