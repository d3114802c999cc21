// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package api

// Error codes carried in APIError.Code.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Client-facing messages.
const (
	msgInvalidCredentials  = "Incorrect username or password"
	msgCustomUnavailable   = "Custom model not available. Please train the model first."
	msgZeroShotUnavailable = "Zero-shot model not available. Please try again later."
	msgRulesUnavailable    = "Rule-based classifier not available."
	msgPredictionFailed    = "Prediction failed"
	msgInvalidBody         = "Request body must be a JSON object"
	msgBodyTooLarge        = "Request body too large"
	msgRateLimited         = "Too many requests"
)
