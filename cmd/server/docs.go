// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package main provides the FlipItNews HTTP server
//
// FlipItNews API classifies news text into five categories and serves a
// small demo news feed.
//
// @title FlipItNews API
// @version 1.0
// @description News classification service with three interchangeable strategies.
// @description
// @description ## Strategies
// @description
// @description - **custom**: TF-IDF features and a trained classifier loaded from the model store
// @description - **bert**: hosted zero-shot classification model
// @description - **rules**: keyword rules, always available
// @description
// @description Every strategy answers with one of Business, Technology, Politics, Sports or Entertainment.
// @description A strategy that is not loaded answers 503; the others keep serving.
// @description
// @description ## Authentication
// @description
// @description POST /token exchanges the demo credential for a bearer token. Prediction endpoints do not require it.
// @description
// @description ## Rate Limiting
// @description
// @description Per-IP limits apply to /token, /predict and /news. Rate limit headers are included in responses.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "request_id": "..."
// @description   },
// @description   "detail": "Human-readable error message",
// @description   "metadata": {
// @description     "timestamp": "2026-01-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/flipitnews/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from POST /token.
//
// @tag.name Core
// @tag.description Welcome message and health status
//
// @tag.name Auth
// @tag.description Demo credential exchange
//
// @tag.name Prediction
// @tag.description News category prediction with the custom, zero-shot and rules strategies
//
// @tag.name News
// @tag.description Demo news feed and recommendations
package main
