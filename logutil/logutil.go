// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warnings.
	LevelWarn
	// LevelError is for errors.
	LevelError
)

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format selects the record encoding.
type Format string

const (
	// FormatText writes key=value records.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" (or "") and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid log format: %s (valid options: text, json)", s)
	}
}

// EnvDebug enables debug logging when set to "true".
const EnvDebug = "TERMKIT_DEBUG"

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	currentLevel           = LevelInfo
	format                 = FormatText
	outputWriter io.Writer = os.Stderr
)

func init() {
	SetupLogger(false, FormatText)
}

// SetupLogger configures the package logger to write to stderr.
// It is safe for concurrent use.
func SetupLogger(debug bool, f Format) {
	SetupLoggerWithWriter(os.Stderr, debug, f)
}

// SetupLoggerWithWriter configures the package logger with a custom writer.
// It is safe for concurrent use.
func SetupLoggerWithWriter(w io.Writer, debug bool, f Format) {
	mu.Lock()
	defer mu.Unlock()

	outputWriter = w
	format = f
	if debug {
		currentLevel = LevelDebug
	} else {
		currentLevel = LevelInfo
	}
	rebuild()
}

// SetOutput redirects the logger, keeping level and format.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	outputWriter = w
	rebuild()
}

// SetLevel changes the minimum level, keeping writer and format.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level
	rebuild()
}

// rebuild replaces the handler. Caller must hold mu.
func rebuild() {
	opts := &slog.HandlerOptions{Level: currentLevel.slog()}
	if os.Getenv(EnvDebug) == "true" {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(outputWriter, opts)
	} else {
		handler = slog.NewTextHandler(outputWriter, opts)
	}
	globalLogger = slog.New(handler)
}

// GetLevel returns the current logging level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// IsDebugEnabled reports whether debug records are written, either because
// of SetupLogger/SetLevel or because TERMKIT_DEBUG=true.
func IsDebugEnabled() bool {
	mu.RLock()
	level := currentLevel
	mu.RUnlock()
	return level == LevelDebug || os.Getenv(EnvDebug) == "true"
}

// ParseLevel parses "debug", "info", "warn"/"warning" or "error".
// Unrecognised values give LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger returns the underlying slog.Logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Debug logs at debug level when debug is enabled.
func Debug(msg string, args ...any) {
	if IsDebugEnabled() {
		Logger().Debug(msg, args...)
	}
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}
