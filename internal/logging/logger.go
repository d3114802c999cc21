// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

// Package logging provides centralized zerolog-based logging for FlipItNews.
//
// Both the API server and the offline trainer log through a single global
// zerolog logger configured once at startup:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//	logging.Info().Str("model", name).Msg("Custom model loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Zero-shot request failed")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// event is never emitted.
//
// When Config.Dir is set, output is also written to rotating files in that
// directory: api.log receives everything, errors.log receives error level
// and above, and predictions.log receives the PredictionLogger lines.
package logging

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file names and rotation limits used when Config.Dir is set.
const (
	APILogFile         = "api.log"
	ErrorLogFile       = "errors.log"
	PredictionsLogFile = "predictions.log"

	FileMaxSizeMB  = 10
	FileMaxBackups = 5
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string

	// Format is json or console.
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// Output defaults to os.Stderr.
	Output io.Writer

	// Dir enables rotating log files in this directory. Empty disables them.
	Dir string
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

var (
	log     zerolog.Logger
	predLog zerolog.Logger
	files   []io.Closer
	mu      sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	initLogger(DefaultConfig())
}

// Init (re)configures the global logger. It is safe to call more than once.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger configures the global logger (must be called with mu held).
func initLogger(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	var output io.Writer = cfg.Output
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
		}
	}

	_ = closeFiles()
	predOutput := output
	if cfg.Dir != "" {
		api := rotatingFile(cfg.Dir, APILogFile)
		errs := rotatingFile(cfg.Dir, ErrorLogFile)
		preds := rotatingFile(cfg.Dir, PredictionsLogFile)
		files = []io.Closer{api, errs, preds}

		output = zerolog.MultiLevelWriter(output, api, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: errs},
			Level:  zerolog.ErrorLevel,
		})
		predOutput = zerolog.MultiLevelWriter(output, preds)
	}

	log = newLogger(output, cfg.Caller)
	predLog = newLogger(predOutput, cfg.Caller)
}

func newLogger(w io.Writer, caller bool) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	if caller {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

func rotatingFile(dir, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    FileMaxSizeMB,
		MaxBackups: FileMaxBackups,
	}
}

// closeFiles closes the open log files (must be called with mu held).
func closeFiles() error {
	var errs []error
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	files = nil
	return errors.Join(errs...)
}

// Close flushes and closes the log files opened by Init. The global logger
// keeps writing to its primary output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFiles()
}

// parseLevel converts a string level to zerolog.Level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger instance, typically in tests.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
	predLog = l
}

// With creates a child logger context from the global logger.
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

// Debug starts a new message with debug level.
func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Debug()
}

// Info starts a new message with info level.
func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

// Warn starts a new message with warning level.
func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

// Error starts a new message with error level.
func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Fatal starts a new message with fatal level; os.Exit(1) follows the write.
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Fatal()
}

// Err starts an error level message carrying err.
func Err(err error) *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Err(err)
}

// SetLevelString updates the global log level from a string.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// NewTestLogger creates a JSON logger writing to w, for capturing output in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
