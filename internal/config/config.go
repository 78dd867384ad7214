// Package config loads host configuration for the engine's CLI and HTTP
// server. Values resolve in order: built-in defaults, an optional YAML file,
// then environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the serving host. The engine itself takes no
// configuration; everything here concerns the boundary around it.
type Config struct {
	// ListenAddr is the HTTP listen address for the serve command.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel is a zerolog level string (trace..panic).
	LogLevel string `yaml:"log_level"`

	// HistorySize bounds the in-memory calculation history.
	HistorySize int `yaml:"history_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:  ":8080",
		LogLevel:    "info",
		HistorySize: 100,
	}
}

// Load resolves configuration from defaults, the YAML file at path (skipped
// when path is empty), and SECR_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("SECR_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("SECR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SECR_HISTORY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid SECR_HISTORY_SIZE %q", v)
		}
		cfg.HistorySize = n
	}

	if cfg.HistorySize <= 0 {
		return cfg, fmt.Errorf("history_size must be positive, got %d", cfg.HistorySize)
	}
	return cfg, nil
}
