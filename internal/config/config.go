package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/labres/internal/core/reservation"
)

// ConfigVersion is written into new config files.
const ConfigVersion = "1"

// Environment variables that override the config file.
const (
	EnvDBPath         = "LABRES_DB_PATH"
	EnvConflictPolicy = "LABRES_CONFLICT_POLICY"
	EnvLogLevel       = "LABRES_LOG_LEVEL"
)

// Config represents the flat LABRES configuration
type Config struct {
	Version        string `json:"version"`
	DBPath         string `json:"db_path,omitempty"`         // empty means ~/.labres/labres.db
	ConflictPolicy string `json:"conflict_policy,omitempty"` // approved_only or approved_and_pending
	LogLevel       string `json:"log_level,omitempty"`       // logrus level name
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:        ConfigVersion,
		ConflictPolicy: string(reservation.DefaultConflictPolicy),
		LogLevel:       "warning",
	}
}

// LoadConfig reads .labres/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".labres", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Load resolves the effective configuration for dir.
// Precedence, highest first: process environment, dir/.env, dir/.labres/config.json, defaults.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup(EnvDBPath); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvConflictPolicy); ok && v != "" {
		cfg.ConflictPolicy = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}

	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	labresDir := filepath.Join(dir, ".labres")
	if err := os.MkdirAll(labresDir, 0755); err != nil {
		return fmt.Errorf("failed to create .labres dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(labresDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Policy parses the configured conflict policy.
func (c *Config) Policy() (reservation.ConflictPolicy, error) {
	policy, err := reservation.ParseConflictPolicy(c.ConflictPolicy)
	if err != nil {
		return "", fmt.Errorf("invalid conflict_policy: %w", err)
	}
	return policy, nil
}
