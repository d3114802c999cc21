// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package api is the HTTP surface of the classification service.

Routes:

	GET  /                            welcome message
	POST /token                       demo credential -> access token
	POST /predict/bert                zero-shot strategy
	POST /predict/custom              trained pipeline
	POST /predict/rules               keyword rules
	GET  /news                        full demo feed
	GET  /news/feed?category=         feed filtered by category (case-insensitive)
	GET  /recommendations/{user_id}   demo recommendations
	GET  /health                      per-strategy load state and uptime
	GET  /metrics                     Prometheus exposition
	GET  /swagger/*                   OpenAPI document and Swagger UI

Successful responses are the bare records (PredictionResponse, TokenResponse,
[]news.Article, ...) so existing clients keep working. Every error uses one
envelope:

	{
	  "success": false,
	  "error": {"code": "SERVICE_UNAVAILABLE", "message": "...", "request_id": "..."},
	  "detail": "..."
	}

detail repeats the message for clients that expect the FastAPI error shape.

Status codes for predictions: 400 for an undecodable body or a missing text
field, 503 when the requested strategy is not loaded, 500 when classification
fails. Empty and whitespace-only text is classified, not rejected.

Middleware order: request ID, panic recovery, access log, Prometheus
metrics, CORS, gzip, then per-group rate limits (go-chi/httprate).
*/
package api
