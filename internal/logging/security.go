// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package logging

import (
	"github.com/rs/zerolog"
)

// SecurityLogger logs authentication outcomes with credentials masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger on a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogTokenIssued logs a successful token exchange.
func (l *SecurityLogger) LogTokenIssued(username, ip, token string) {
	l.logger.Info().
		Str("event", "token_issued").
		Str("status", "success").
		Str("username", SanitizeUsername(username)).
		Str("ip", ip).
		Str("token", SanitizeToken(token)).
		Msg("")
}

// LogLoginFailure logs a rejected credential.
func (l *SecurityLogger) LogLoginFailure(username, ip, reason string) {
	l.logger.Warn().
		Str("event", "login_failed").
		Str("status", "failed").
		Str("username", SanitizeUsername(username)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("")
}

// SanitizeToken masks a token, showing only the first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUsername masks a username, keeping the first 2 characters.
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}
