// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package main is the entry point for the FlipItNews API server.

The server classifies news text into Business, Technology, Politics, Sports
or Entertainment with three interchangeable strategies and serves a small
mock news feed alongside.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("flipitnews")
	├── DataSupervisor ("data-layer")
	│   └── Model reload (SIGHUP)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Prediction log consumer (EVENTS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Model store: file or BadgerDB artifact holding the trained pipeline
 4. Event bus: Watermill GoChannel, or NATS JetStream with -tags nats
 5. Classification: custom, zero-shot and rules strategies
 6. Authentication: demo credential with optional HS256 JWT signing
 7. HTTP Server: Chi router with CORS, rate limiting and metrics

A strategy that fails to load does not stop the server: its endpoint answers
503 until the problem is fixed. Train a model with cmd/train, then send
SIGHUP to load it without a restart.

Swagger documentation is served at /swagger/index.html. Regenerate the
docs package after changing handler annotations:

	swag init -g cmd/server/docs.go -o docs

# Build Tags

	go build ./cmd/server               # in-process prediction events
	go build -tags nats ./cmd/server    # NATS JetStream prediction events

# Signal Handling

  - SIGHUP reloads the custom model; a failed reload keeps the current one
  - SIGINT and SIGTERM stop the HTTP server gracefully and drain the tree

# Example Usage

Development:

	export LOG_FORMAT=console
	export ZERO_SHOT_ENABLED=false
	./flipitnews

Production with signed tokens and the hosted zero-shot model:

	export ENVIRONMENT=production
	export JWT_SECRET=$(openssl rand -base64 32)
	export HF_API_TOKEN=hf_...
	export MODEL_STORE=badger
	export MODEL_PATH=/var/lib/flipitnews/models
	./flipitnews
*/
package main
