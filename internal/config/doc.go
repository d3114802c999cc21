// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package config provides centralized configuration management for FlipItNews.

Both binaries (cmd/server and cmd/train) load the same Config so that the
artifact location written by the trainer is the one the server reads.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file (config.yaml, /etc/flipitnews/config.yaml, or CONFIG_PATH)
  - Environment variables (explicit mapping table, unknown variables ignored)

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8000)
  - HTTP_TIMEOUT: Per-request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)
  - ENVIRONMENT: development, staging or production

Security (SecurityConfig):
  - DEMO_USERNAME / DEMO_PASSWORD: The single accepted credential (default: user1 / password123)
  - JWT_SECRET: When set, /token issues signed HS256 tokens (min 32 chars)
  - TOKEN_TTL: Lifetime of signed tokens (default: 30m)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - TRUSTED_PROXIES: Comma-separated proxy IPs

Classification strategies:
  - MODEL_STORE: file or badger (default: file)
  - MODEL_PATH: Artifact file or Badger directory (default: models/custom_model.model)
  - ZERO_SHOT_ENABLED, ZERO_SHOT_URL, ZERO_SHOT_MODEL, HF_API_TOKEN
  - ZERO_SHOT_TIMEOUT, ZERO_SHOT_RPS, ZERO_SHOT_BURST
  - ZERO_SHOT_BREAKER_FAILURES, ZERO_SHOT_BREAKER_TIMEOUT
  - RULES_ENABLED (default: true)
  - PREDICTION_DEFAULT_STRATEGY: empty or "rules"
  - PREDICTION_LOG_TEXT_LENGTH (default: 50)

Offline training (TrainingConfig):
  - TRAINING_DATA_PATH (default: flipitnews-data.csv)
  - TRAINING_REPORT_PATH (default: model_training_results.txt)
  - TRAINING_ENGINE: csv or duckdb
  - TRAINING_TEXT_COLUMN / TRAINING_LABEL_COLUMN (default: Article / Category)
  - TRAINING_TEST_SIZE (default: 0.2), TRAINING_SEED (default: 42)

Events and logging:
  - EVENTS_ENABLED, EVENTS_TOPIC, EVENTS_BUFFER_SIZE, NATS_URL
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	fmt.Printf("Server listening on %s:%d\n", cfg.Server.Host, cfg.Server.Port)

# Validation

Validate rejects out-of-range ports, unknown store backends and engines,
malformed endpoint URLs, and test sizes outside (0, 1). Error messages name
the environment variable to fix.

# Thread Safety

Config structs are immutable after Load() and safe for concurrent reads.
*/
package config
