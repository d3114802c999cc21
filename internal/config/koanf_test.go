// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}

	if cfg.Security.DemoUsername != "user1" || cfg.Security.DemoPassword != "password123" {
		t.Errorf("demo credential = %q/%q, want user1/password123",
			cfg.Security.DemoUsername, cfg.Security.DemoPassword)
	}
	if cfg.Security.JWTSecret != "" {
		t.Errorf("Security.JWTSecret should be empty by default")
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}

	if cfg.Model.Store != "file" {
		t.Errorf("Model.Store = %q, want file", cfg.Model.Store)
	}
	if cfg.Model.Path != "models/custom_model.model" {
		t.Errorf("Model.Path = %q, want models/custom_model.model", cfg.Model.Path)
	}

	if !cfg.ZeroShot.Enabled {
		t.Errorf("ZeroShot.Enabled should be true by default")
	}
	if cfg.ZeroShot.Model != "facebook/bart-large-mnli" {
		t.Errorf("ZeroShot.Model = %q, want facebook/bart-large-mnli", cfg.ZeroShot.Model)
	}
	if !cfg.Rules.Enabled {
		t.Errorf("Rules.Enabled should be true by default")
	}
	if cfg.Prediction.DefaultStrategy != "" {
		t.Errorf("Prediction.DefaultStrategy = %q, want empty", cfg.Prediction.DefaultStrategy)
	}
	if cfg.Prediction.LogTextLength != 50 {
		t.Errorf("Prediction.LogTextLength = %d, want 50", cfg.Prediction.LogTextLength)
	}

	if cfg.Training.TestSize != 0.2 {
		t.Errorf("Training.TestSize = %v, want 0.2", cfg.Training.TestSize)
	}
	if cfg.Training.Seed != 42 {
		t.Errorf("Training.Seed = %d, want 42", cfg.Training.Seed)
	}
	if cfg.Training.TextColumn != "Article" || cfg.Training.LabelColumn != "Category" {
		t.Errorf("Training columns = %q/%q, want Article/Category",
			cfg.Training.TextColumn, cfg.Training.LabelColumn)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Server
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"ENVIRONMENT", "server.environment"},

		// Security
		{"JWT_SECRET", "security.jwt_secret"},
		{"DEMO_USERNAME", "security.demo_username"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"CORS_ORIGINS", "security.cors_origins"},

		// Strategies
		{"MODEL_STORE", "model.store"},
		{"MODEL_PATH", "model.path"},
		{"HF_API_TOKEN", "zero_shot.api_token"},
		{"ZERO_SHOT_RPS", "zero_shot.requests_per_second"},
		{"RULES_ENABLED", "rules.enabled"},
		{"PREDICTION_DEFAULT_STRATEGY", "prediction.default_strategy"},

		// Training
		{"TRAINING_ENGINE", "training.engine"},
		{"TRAINING_TEST_SIZE", "training.test_size"},

		// Events
		{"NATS_URL", "events.nats_url"},

		// Logging
		{"LOG_LEVEL", "logging.level"},
		{"LOG_DIR", "logging.dir"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("test: true"), 0o600); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("test: true"), 0o600); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		t.Setenv(ConfigPathEnvVar, customPath)
		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadFromPathEnvVars tests loading configuration from environment variables
func TestLoadFromPathEnvVars(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MODEL_STORE", "badger")
	t.Setenv("MODEL_PATH", "/var/lib/flipitnews/models")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("PREDICTION_DEFAULT_STRATEGY", "rules")
	t.Setenv("TRAINING_TEST_SIZE", "0.25")
	t.Setenv("ZERO_SHOT_TIMEOUT", "5s")

	cfg, err := LoadFromPath("")
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Model.Store != "badger" || cfg.Model.Path != "/var/lib/flipitnews/models" {
		t.Errorf("Model = %+v, want badger at /var/lib/flipitnews/models", cfg.Model)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Prediction.DefaultStrategy != "rules" {
		t.Errorf("Prediction.DefaultStrategy = %q, want rules", cfg.Prediction.DefaultStrategy)
	}
	if cfg.Training.TestSize != 0.25 {
		t.Errorf("Training.TestSize = %v, want 0.25", cfg.Training.TestSize)
	}
	if cfg.ZeroShot.Timeout != 5*time.Second {
		t.Errorf("ZeroShot.Timeout = %v, want 5s", cfg.ZeroShot.Timeout)
	}

	// Defaults are still applied for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
}

// TestLoadFromPathConfigFile tests loading configuration from a YAML file
func TestLoadFromPathConfigFile(t *testing.T) {
	configContent := `
server:
  port: 8080
  environment: production
model:
  store: badger
  path: /data/models
zero_shot:
  enabled: false
training:
  engine: duckdb
  seed: 7
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Errorf("IsProduction() = false, want true")
	}
	if cfg.Model.Store != "badger" || cfg.Model.Path != "/data/models" {
		t.Errorf("Model = %+v, want badger at /data/models", cfg.Model)
	}
	if cfg.ZeroShot.Enabled {
		t.Errorf("ZeroShot.Enabled = true, want false")
	}
	if cfg.Training.Engine != "duckdb" || cfg.Training.Seed != 7 {
		t.Errorf("Training = %+v, want duckdb engine with seed 7", cfg.Training)
	}
	if cfg.Training.TextColumn != "Article" {
		t.Errorf("Training.TextColumn = %q, want Article (default)", cfg.Training.TextColumn)
	}
}

// TestLoadFromPathEnvOverridesFile verifies ENV > File precedence
func TestLoadFromPathEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 8080\nlogging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (file)", cfg.Logging.Level)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFromPath() expected error for missing file, got nil")
	}
}

// TestLoadFromPathValidation verifies invalid values are rejected at load time
func TestLoadFromPathValidation(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		errContains string
	}{
		{name: "port out of range", env: map[string]string{"HTTP_PORT": "70000"}, errContains: "HTTP_PORT"},
		{name: "unknown store", env: map[string]string{"MODEL_STORE": "s3"}, errContains: "MODEL_STORE"},
		{name: "unknown engine", env: map[string]string{"TRAINING_ENGINE": "spark"}, errContains: "TRAINING_ENGINE"},
		{name: "test size too large", env: map[string]string{"TRAINING_TEST_SIZE": "1.5"}, errContains: "TRAINING_TEST_SIZE"},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}, errContains: "LOG_LEVEL"},
		{name: "bad strategy", env: map[string]string{"PREDICTION_DEFAULT_STRATEGY": "bert"}, errContains: "PREDICTION_DEFAULT_STRATEGY"},
		{name: "short jwt secret", env: map[string]string{"JWT_SECRET": "short"}, errContains: "JWT_SECRET"},
		{name: "bad zero-shot url", env: map[string]string{"ZERO_SHOT_URL": "ftp://models.example.com"}, errContains: "ZERO_SHOT_URL"},
		{name: "bad nats url", env: map[string]string{"NATS_URL": "http://nats.example.com"}, errContains: "NATS_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromPath("")
			if err == nil {
				t.Fatalf("LoadFromPath() expected error containing %q, got nil", tt.errContains)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("LoadFromPath() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}
