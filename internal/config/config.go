// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Serving:
//     - Server: HTTP listener, timeouts, environment
//     - Security: demo credential, token signing, rate limits, CORS
//     - Prediction: strategy fallback and prediction log settings
//
//  2. Classification strategies:
//     - Model: persisted custom pipeline location
//     - ZeroShot: remote zero-shot inference endpoint
//     - Rules: keyword rule classifier
//
//  3. Offline:
//     - Training: corpus location, split and report settings
//
//  4. Infrastructure:
//     - Events: prediction event transport
//     - Logging: log levels and output formats
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Model      ModelConfig      `koanf:"model"`
	ZeroShot   ZeroShotConfig   `koanf:"zero_shot"`
	Rules      RulesConfig      `koanf:"rules"`
	Prediction PredictionConfig `koanf:"prediction"`
	Training   TrainingConfig   `koanf:"training"`
	Events     EventsConfig     `koanf:"events"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// SecurityConfig holds authentication stub and request limiting settings
type SecurityConfig struct {
	// JWTSecret signs /token responses as HS256 JWTs. When empty the demo
	// token "fake-jwt-token-for-demo" is returned instead.
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	// DemoUsername and DemoPassword define the single accepted credential.
	// The password is bcrypt-hashed at startup and never kept in plaintext
	// by the auth service.
	DemoUsername string `koanf:"demo_username"`
	DemoPassword string `koanf:"demo_password"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`

	// Dir enables rotating api.log, errors.log and predictions.log files
	// (10 MB, 5 backups each) in this directory.
	// Default: "" (stderr only)
	Dir string `koanf:"dir"`
}

// ModelConfig locates the persisted custom pipeline
type ModelConfig struct {
	// Store is the artifact backend: "file" or "badger".
	Store string `koanf:"store"`

	// Path is the artifact file for the file store, or the database
	// directory for the badger store.
	Path string `koanf:"path"`
}

// ZeroShotConfig configures the remote zero-shot classification endpoint
type ZeroShotConfig struct {
	Enabled bool `koanf:"enabled"`

	// URL receives POSTed zero-shot-classification requests.
	URL string `koanf:"url"`

	// Model is the display name reported in prediction results.
	Model string `koanf:"model"`

	// APIToken is sent as a bearer token when set.
	APIToken string `koanf:"api_token"`

	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond and Burst pace outbound requests.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// BreakerFailures consecutive failures open the circuit for BreakerTimeout.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// RulesConfig configures the keyword rule classifier
type RulesConfig struct {
	Enabled bool `koanf:"enabled"`
}

// PredictionConfig controls request-time strategy behavior
type PredictionConfig struct {
	// DefaultStrategy, when set (only "rules" is accepted), serves
	// /predict/bert and /predict/custom with that strategy whenever their
	// own strategy is not loaded.
	DefaultStrategy string `koanf:"default_strategy"`

	// LogTextLength is the number of leading characters of each input kept
	// in prediction log lines.
	LogTextLength int `koanf:"log_text_length"`
}

// TrainingConfig holds offline training settings
type TrainingConfig struct {
	DataPath    string  `koanf:"data_path"`
	ReportPath  string  `koanf:"report_path"`
	Engine      string  `koanf:"engine"` // "csv" or "duckdb"
	TextColumn  string  `koanf:"text_column"`
	LabelColumn string  `koanf:"label_column"`
	TestSize    float64 `koanf:"test_size"`
	Seed        int64   `koanf:"seed"`
}

// EventsConfig configures prediction event publishing
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Topic   string `koanf:"topic"`

	// BufferSize bounds the in-process channel between publisher and consumer.
	BufferSize int `koanf:"buffer_size"`

	// NATSURL selects NATS JetStream transport in builds with the nats tag.
	// Empty keeps the in-process channel.
	NATSURL string `koanf:"nats_url"`
}

// Load loads configuration using Koanf. It is kept as the short entry point
// used by the binaries.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
