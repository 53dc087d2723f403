// Package config loads the service configuration from a TOML file, falling
// back to defaults for anything unset.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level service configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Scoring ScoringConfig `toml:"scoring"`
	Model   ModelConfig   `toml:"model"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                   string   `toml:"host"`
	Port                   int      `toml:"port"`
	CORSAllowedOrigins     []string `toml:"cors_allowed_origins"`
	ReadTimeoutSeconds     int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int      `toml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
	MaxUploadBytes         int64    `toml:"max_upload_bytes"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ScoringConfig exposes the policy knobs the source material disagrees on:
// the risk-level boundaries (65/35 vs 60/30) and the pilot fatigue window
// (30 vs 7 days). Thresholds themselves live in the versioned policy table.
type ScoringConfig struct {
	HighBoundary      float64 `toml:"high_boundary"`
	MediumBoundary    float64 `toml:"medium_boundary"`
	RuleWeight        float64 `toml:"rule_weight"`
	FatigueWindowDays int     `toml:"fatigue_window_days"`
}

// ModelConfig holds the optional classifier artifact settings.
type ModelConfig struct {
	Enabled      bool   `toml:"enabled"`
	ArtifactPath string `toml:"artifact_path"`
}

// DefaultServerConfig returns the default HTTP server settings.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:                   "0.0.0.0",
		Port:                   8080,
		CORSAllowedOrigins:     []string{"*"},
		ReadTimeoutSeconds:     30,
		WriteTimeoutSeconds:    30,
		ShutdownTimeoutSeconds: 10,
		MaxUploadBytes:         10 << 20,
	}
}

// DefaultLoggingConfig returns the default logger settings.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "info",
		Format: "console",
	}
}

// DefaultScoringConfig returns the default scoring knobs.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		HighBoundary:      65,
		MediumBoundary:    35,
		RuleWeight:        0.6,
		FatigueWindowDays: 30,
	}
}

// DefaultModelConfig returns the default classifier artifact settings.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Enabled:      false,
		ArtifactPath: "model.json",
	}
}

// Default returns the complete default configuration.
func Default() *Config {
	return &Config{
		Server:  DefaultServerConfig(),
		Logging: DefaultLoggingConfig(),
		Scoring: DefaultScoringConfig(),
		Model:   DefaultModelConfig(),
	}
}

// Load reads configuration from a TOML file. An empty path returns the
// defaults; a missing file is an error only when a path was given.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration ranges.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Scoring.RuleWeight < 0 || c.Scoring.RuleWeight > 1 {
		return fmt.Errorf("rule_weight %.2f outside [0,1]", c.Scoring.RuleWeight)
	}
	if c.Scoring.HighBoundary <= c.Scoring.MediumBoundary {
		return fmt.Errorf("high_boundary %.1f must exceed medium_boundary %.1f",
			c.Scoring.HighBoundary, c.Scoring.MediumBoundary)
	}
	if c.Model.Enabled && c.Model.ArtifactPath == "" {
		return fmt.Errorf("model enabled but artifact_path is empty")
	}
	return nil
}
