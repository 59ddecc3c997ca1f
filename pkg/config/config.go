package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. Fields missing from the
// file keep their defaults.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.TopEndpoints < 1 {
		return errors.New("top_endpoints must be >= 1")
	}

	if cfg.SlowestRequests < 1 {
		return errors.New("slowest_requests must be >= 1")
	}

	if cfg.ErrorRateModerate < 0 {
		return errors.New("error_rate_moderate must not be negative")
	}

	if cfg.ErrorRateHigh <= cfg.ErrorRateModerate {
		return fmt.Errorf("error_rate_high (%.1f) must be greater than error_rate_moderate (%.1f)",
			cfg.ErrorRateHigh, cfg.ErrorRateModerate)
	}

	if cfg.SlowThresholdMs <= 0 {
		return errors.New("slow_threshold_ms must be positive")
	}

	if cfg.VerySlowThresholdMs <= cfg.SlowThresholdMs {
		return fmt.Errorf("very_slow_threshold_ms (%.0f) must be greater than slow_threshold_ms (%.0f)",
			cfg.VerySlowThresholdMs, cfg.SlowThresholdMs)
	}

	if cfg.BarWidth < 1 {
		return errors.New("bar_width must be >= 1")
	}

	// Truncation appends "...", so anything narrower cannot render.
	if cfg.EndpointWidth < 4 {
		return errors.New("endpoint_width must be >= 4")
	}

	return nil
}
