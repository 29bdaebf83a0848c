// Package config loads the service configuration from defaults, an optional
// YAML file and environment overrides, in that order.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the process configuration.
type Config struct {
	Addr        string     `yaml:"addr"`
	Store       string     `yaml:"store"` // "postgres" or "memory"
	DatabaseURL string     `yaml:"database_url"`
	LogMode     string     `yaml:"log_mode"` // "dev" or "prod"
	OIDC        OIDCConfig `yaml:"oidc"`
}

// OIDCConfig configures bearer-token verification. With Disabled set the
// server trusts the X-User-ID header instead; local development only.
type OIDCConfig struct {
	Issuer   string `yaml:"issuer"`
	ClientID string `yaml:"client_id"`
	Disabled bool   `yaml:"disabled"`
}

func defaultConfig() *Config {
	return &Config{
		Addr:    ":8080",
		Store:   "postgres",
		LogMode: "dev",
	}
}

// Load builds the configuration. The file path comes from NUTRISTATS_CONFIG
// and defaults to ./config.yaml if that exists; a missing file is fine.
func Load() (*Config, error) {
	cfg := defaultConfig()

	path := os.Getenv("NUTRISTATS_CONFIG")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Store != "postgres" && cfg.Store != "memory" {
		return nil, fmt.Errorf("config: unknown store %q", cfg.Store)
	}
	if cfg.Store == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: database_url (or DATABASE_URL) is required for the postgres store")
	}
	if !cfg.OIDC.Disabled && cfg.OIDC.Issuer == "" {
		return nil, fmt.Errorf("config: oidc.issuer is required unless oidc.disabled is set")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Addr, "ADDR")
	setString(&cfg.Store, "STORE")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.LogMode, "LOG_MODE")
	setString(&cfg.OIDC.Issuer, "OIDC_ISSUER")
	setString(&cfg.OIDC.ClientID, "OIDC_CLIENT_ID")
	if v := os.Getenv("AUTH_DISABLED"); v == "1" || v == "true" {
		cfg.OIDC.Disabled = true
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
