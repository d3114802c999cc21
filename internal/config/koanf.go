// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/flipitnews/config.yaml",
	"/etc/flipitnews/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			JWTSecret:         "", // Empty: static demo token
			TokenTTL:          30 * time.Minute,
			DemoUsername:      "user1",
			DemoPassword:      "password123",
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Model: ModelConfig{
			Store: "file",
			Path:  "models/custom_model.model",
		},
		ZeroShot: ZeroShotConfig{
			Enabled:           true,
			URL:               "https://api-inference.huggingface.co/models/facebook/bart-large-mnli",
			Model:             "facebook/bart-large-mnli",
			APIToken:          "",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
			BreakerFailures:   5,
			BreakerTimeout:    30 * time.Second,
		},
		Rules: RulesConfig{
			Enabled: true,
		},
		Prediction: PredictionConfig{
			DefaultStrategy: "", // Memory-constrained deployments set "rules"
			LogTextLength:   50,
		},
		Training: TrainingConfig{
			DataPath:    "flipitnews-data.csv",
			ReportPath:  "model_training_results.txt",
			Engine:      "csv",
			TextColumn:  "Article",
			LabelColumn: "Category",
			TestSize:    0.2,
			Seed:        42,
		},
		Events: EventsConfig{
			Enabled:    true,
			Topic:      "predictions",
			BufferSize: 256,
			NATSURL:    "",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	return LoadFromPath(findConfigFile())
}

// LoadFromPath loads configuration like LoadWithKoanf but reads the YAML
// layer from configPath. An empty path skips the file layer; a non-empty
// path that cannot be read is an error.
func LoadFromPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port, MODEL_PATH -> model.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security mappings
	"jwt_secret":          "security.jwt_secret",
	"token_ttl":           "security.token_ttl",
	"demo_username":       "security.demo_username",
	"demo_password":       "security.demo_password",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"trusted_proxies":     "security.trusted_proxies",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"log_dir":    "logging.dir",

	// Model mappings
	"model_store": "model.store",
	"model_path":  "model.path",

	// Zero-shot mappings
	"zero_shot_enabled":          "zero_shot.enabled",
	"zero_shot_url":              "zero_shot.url",
	"zero_shot_model":            "zero_shot.model",
	"hf_api_token":               "zero_shot.api_token",
	"zero_shot_timeout":          "zero_shot.timeout",
	"zero_shot_rps":              "zero_shot.requests_per_second",
	"zero_shot_burst":            "zero_shot.burst",
	"zero_shot_breaker_failures": "zero_shot.breaker_failures",
	"zero_shot_breaker_timeout":  "zero_shot.breaker_timeout",

	// Rules mappings
	"rules_enabled": "rules.enabled",

	// Prediction mappings
	"prediction_default_strategy": "prediction.default_strategy",
	"prediction_log_text_length":  "prediction.log_text_length",

	// Training mappings
	"training_data_path":    "training.data_path",
	"training_report_path":  "training.report_path",
	"training_engine":       "training.engine",
	"training_text_column":  "training.text_column",
	"training_label_column": "training.label_column",
	"training_test_size":    "training.test_size",
	"training_seed":         "training.seed",

	// Events mappings
	"events_enabled":     "events.enabled",
	"events_topic":       "events.topic",
	"events_buffer_size": "events.buffer_size",
	"nats_url":           "events.nats_url",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - HF_API_TOKEN -> zero_shot.api_token
//   - MODEL_STORE -> model.store
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
