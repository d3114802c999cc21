// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidateRateLimits(t *testing.T) {
	tests := []struct {
		name        string
		requests    int
		window      time.Duration
		disabled    bool
		wantErr     bool
		errContains string
	}{
		{name: "valid defaults", requests: 100, window: time.Minute},
		{name: "valid minimum requests", requests: 1, window: time.Minute},
		{name: "valid maximum requests", requests: 100000, window: time.Minute},
		{name: "valid minimum window", requests: 100, window: time.Second},
		{name: "valid maximum window", requests: 100, window: time.Hour},
		{name: "invalid zero requests", requests: 0, window: time.Minute, wantErr: true, errContains: "RATE_LIMIT_REQUESTS"},
		{name: "invalid too many requests", requests: 100001, window: time.Minute, wantErr: true, errContains: "RATE_LIMIT_REQUESTS"},
		{name: "invalid zero window", requests: 100, window: 0, wantErr: true, errContains: "RATE_LIMIT_WINDOW"},
		{name: "invalid window too small", requests: 100, window: 500 * time.Millisecond, wantErr: true, errContains: "RATE_LIMIT_WINDOW"},
		{name: "invalid window too large", requests: 100, window: 2 * time.Hour, wantErr: true, errContains: "RATE_LIMIT_WINDOW"},
		{name: "disabled skips validation", requests: 0, window: 0, disabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Security: SecurityConfig{
					RateLimitReqs:     tt.requests,
					RateLimitWindow:   tt.window,
					RateLimitDisabled: tt.disabled,
				},
			}

			err := cfg.validateRateLimits()

			if tt.wantErr {
				if err == nil {
					t.Errorf("validateRateLimits() expected error containing %q, got nil", tt.errContains)
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("validateRateLimits() error = %v, want error containing %q", err, tt.errContains)
				}
			} else if err != nil {
				t.Errorf("validateRateLimits() unexpected error = %v", err)
			}
		})
	}
}

func TestValidateEndpointURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "huggingface endpoint with path", url: "https://api-inference.huggingface.co/models/facebook/bart-large-mnli"},
		{name: "local http", url: "http://127.0.0.1:8080/classify"},
		{name: "empty", url: "", wantErr: true},
		{name: "wrong scheme", url: "ftp://example.com/models", wantErr: true},
		{name: "missing host", url: "https:///models", wantErr: true},
		{name: "unparseable", url: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEndpointURL(tt.url, "ZERO_SHOT_URL")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEndpointURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "ZERO_SHOT_URL") {
				t.Errorf("validateEndpointURL() error = %v, want field name in message", err)
			}
		})
	}
}

func TestValidateNATSURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "nats scheme", url: "nats://localhost:4222"},
		{name: "tls scheme", url: "tls://nats.example.com:4222"},
		{name: "websocket", url: "wss://nats.example.com"},
		{name: "http scheme rejected", url: "http://nats.example.com", wantErr: true},
		{name: "missing host", url: "nats://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateNATSURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("validateNATSURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	for level := range validLogLevels {
		t.Run(level, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() with LOG_LEVEL=%s error = %v", level, err)
			}
		})
	}
}

func TestValidatePrediction(t *testing.T) {
	tests := []struct {
		name         string
		strategy     string
		rulesEnabled bool
		wantErr      bool
	}{
		{name: "no fallback", strategy: "", rulesEnabled: false},
		{name: "rules fallback", strategy: "rules", rulesEnabled: true},
		{name: "rules fallback without rules", strategy: "rules", rulesEnabled: false, wantErr: true},
		{name: "unsupported fallback", strategy: "custom", rulesEnabled: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Prediction.DefaultStrategy = tt.strategy
			cfg.Rules.Enabled = tt.rulesEnabled
			if err := cfg.validatePrediction(); (err != nil) != tt.wantErr {
				t.Errorf("validatePrediction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateZeroShot_DisabledSkipsChecks(t *testing.T) {
	cfg := defaultConfig()
	cfg.ZeroShot.Enabled = false
	cfg.ZeroShot.URL = ""
	cfg.ZeroShot.RequestsPerSecond = 0
	if err := cfg.validateZeroShot(); err != nil {
		t.Errorf("validateZeroShot() with zero-shot disabled error = %v", err)
	}

	cfg.ZeroShot.Enabled = true
	if err := cfg.validateZeroShot(); err == nil {
		t.Error("validateZeroShot() expected error for empty URL, got nil")
	}
}

func TestValidateTraining(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  bool
		contains string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "duckdb engine", mutate: func(c *Config) { c.Training.Engine = "duckdb" }},
		{name: "zero test size", mutate: func(c *Config) { c.Training.TestSize = 0 }, wantErr: true, contains: "TRAINING_TEST_SIZE"},
		{name: "full test size", mutate: func(c *Config) { c.Training.TestSize = 1 }, wantErr: true, contains: "TRAINING_TEST_SIZE"},
		{name: "missing text column", mutate: func(c *Config) { c.Training.TextColumn = "" }, wantErr: true, contains: "TRAINING_TEXT_COLUMN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.validateTraining()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateTraining() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("validateTraining() error = %v, want error containing %q", err, tt.contains)
			}
		})
	}
}
