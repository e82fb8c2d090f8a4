package planner

import (
	"os"
	"strconv"
)

// Config holds all configuration for the Planner Service client.
type Config struct {
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:8089",
		Model:      "pulseplan-coach",
		TimeoutMs:  30000,
		MaxRetries: 1,
		LogCalls:   false,
	}
}

// LoadConfig reads planner configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PULSEPLAN_PLANNER_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PULSEPLAN_PLANNER_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PULSEPLAN_PLANNER_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PULSEPLAN_PLANNER_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("PULSEPLAN_PLANNER_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
