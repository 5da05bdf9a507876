// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"9411"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional: when empty the /stats cache is
	// disabled and all statistics are computed per request.
	RedisURL string `env:"REDIS_URL"`

	// AuthSecret verifies editor bearer tokens (HS256). Optional: when empty
	// no token is accepted and every request acts as the default editor.
	AuthSecret string `env:"AUTH_SECRET"`

	// DefaultEditor is the catalog identifier of the editor attributed to
	// unauthenticated requests. Defaults to the bootstrap editor seeded by
	// the initial migration (UUID 00000000-0000-0000-aaaa-000000000001).
	DefaultEditor string `env:"DEFAULT_EDITOR" envDefault:"aaaaaaaaaaaabkvkaaaaaaaaae"`

	// MaxBatchSize bounds the number of entities in one batch create.
	MaxBatchSize int `env:"MAX_BATCH_SIZE" envDefault:"500"`

	// MaxBodyBytes bounds the accepted request body size.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"4194304"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.MaxBatchSize < 1 {
		return nil, fmt.Errorf("config: MAX_BATCH_SIZE must be positive, got %d", cfg.MaxBatchSize)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
