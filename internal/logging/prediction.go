// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// PredictionLogger writes one line per served classification. The message
// keeps the human-readable form operators grep for, and the same values are
// attached as structured fields.
type PredictionLogger struct {
	logger  zerolog.Logger
	textLen int
}

// NewPredictionLogger creates a prediction logger that keeps the first
// textLen characters of each input. Its lines also go to predictions.log
// when file logging is enabled.
func NewPredictionLogger(textLen int) *PredictionLogger {
	mu.RLock()
	defer mu.RUnlock()
	return &PredictionLogger{
		logger:  predLog.With().Str("component", "predictions").Logger(),
		textLen: textLen,
	}
}

// NewPredictionLoggerWithLogger creates a prediction logger on a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPredictionLoggerWithLogger(logger zerolog.Logger, textLen int) *PredictionLogger {
	return &PredictionLogger{
		logger:  logger.With().Str("component", "predictions").Logger(),
		textLen: textLen,
	}
}

// LogPrediction logs a served classification.
//
//	PREDICTION | Model: Rule-Based Classifier | Text: 'Stocks rally...' | Result: Business (74.50%)
func (l *PredictionLogger) LogPrediction(requestID, modelUsed, text, category string, confidence float64) {
	e := l.logger.Info().
		Str("model_used", modelUsed).
		Str("category", category).
		Float64("confidence", confidence)
	if requestID != "" {
		e = e.Str("request_id", requestID)
	}
	e.Msg(FormatPrediction(modelUsed, TruncateText(text, l.textLen), category, confidence))
}

// FormatPrediction renders the prediction log message.
func FormatPrediction(modelUsed, excerpt, category string, confidence float64) string {
	return fmt.Sprintf("PREDICTION | Model: %s | Text: '%s...' | Result: %s (%.2f%%)",
		modelUsed, excerpt, category, confidence*100)
}

// TruncateText returns at most n leading characters (runes) of s.
func TruncateText(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
