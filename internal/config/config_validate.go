// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
		c.validateModel,
		c.validateZeroShot,
		c.validatePrediction,
		c.validateTraining,
		c.validateEvents,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if c.Security.DemoUsername == "" || c.Security.DemoPassword == "" {
		return fmt.Errorf("DEMO_USERNAME and DEMO_PASSWORD are required")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters when set")
	}
	if c.Security.JWTSecret != "" && c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects empty origin entries
func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("CORS_ORIGINS must not contain empty entries")
		}
	}
	return nil
}

// validateRateLimits validates rate limiting bounds
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateModel validates the artifact store settings
func (c *Config) validateModel() error {
	switch c.Model.Store {
	case "file", "badger":
	default:
		return fmt.Errorf("MODEL_STORE must be one of: file, badger")
	}
	if c.Model.Path == "" {
		return fmt.Errorf("MODEL_PATH is required")
	}
	return nil
}

// validateZeroShot validates the zero-shot endpoint (only if enabled)
func (c *Config) validateZeroShot() error {
	if !c.ZeroShot.Enabled {
		return nil
	}
	if err := validateEndpointURL(c.ZeroShot.URL, "ZERO_SHOT_URL"); err != nil {
		return err
	}
	if c.ZeroShot.Timeout <= 0 {
		return fmt.Errorf("ZERO_SHOT_TIMEOUT must be positive")
	}
	if c.ZeroShot.RequestsPerSecond <= 0 {
		return fmt.Errorf("ZERO_SHOT_RPS must be positive")
	}
	if c.ZeroShot.Burst < 1 {
		return fmt.Errorf("ZERO_SHOT_BURST must be at least 1")
	}
	if c.ZeroShot.BreakerFailures < 1 {
		return fmt.Errorf("ZERO_SHOT_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

// validatePrediction validates the fallback strategy
func (c *Config) validatePrediction() error {
	switch c.Prediction.DefaultStrategy {
	case "":
	case "rules":
		if !c.Rules.Enabled {
			return fmt.Errorf("PREDICTION_DEFAULT_STRATEGY=rules requires RULES_ENABLED=true")
		}
	default:
		return fmt.Errorf("PREDICTION_DEFAULT_STRATEGY must be empty or rules")
	}
	if c.Prediction.LogTextLength < 0 {
		return fmt.Errorf("PREDICTION_LOG_TEXT_LENGTH must not be negative")
	}
	return nil
}

// validateTraining validates offline training settings
func (c *Config) validateTraining() error {
	switch c.Training.Engine {
	case "csv", "duckdb":
	default:
		return fmt.Errorf("TRAINING_ENGINE must be one of: csv, duckdb")
	}
	if c.Training.TestSize <= 0 || c.Training.TestSize >= 1 {
		return fmt.Errorf("TRAINING_TEST_SIZE must be between 0 and 1 (exclusive)")
	}
	if c.Training.TextColumn == "" || c.Training.LabelColumn == "" {
		return fmt.Errorf("TRAINING_TEXT_COLUMN and TRAINING_LABEL_COLUMN are required")
	}
	return nil
}

// validateEvents validates event transport settings
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when EVENTS_ENABLED=true")
	}
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be at least 1")
	}
	if c.Events.NATSURL != "" {
		if err := validateNATSURL(c.Events.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	return nil
}
