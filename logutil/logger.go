// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import "log/slog"

// ComponentLogger logs on behalf of one termkit component. It looks up the
// package logger on every call, so it follows later SetupLogger calls.
//
// A nil *ComponentLogger discards everything, which lets components treat
// diagnostics as optional.
type ComponentLogger struct {
	component string
	attrs     []any
}

// NewLogger creates a logger scoped to a named component.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{
		component: component,
		attrs:     []any{"component", component},
	}
}

// WithOperation returns a logger with the operation added.
func (l *ComponentLogger) WithOperation(name string) *ComponentLogger {
	return l.WithFields("operation", name)
}

// WithFields returns a logger with extra alternating key-value pairs.
func (l *ComponentLogger) WithFields(fields ...any) *ComponentLogger {
	if l == nil {
		return nil
	}
	attrs := make([]any, 0, len(l.attrs)+len(fields))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, fields...)
	return &ComponentLogger{component: l.component, attrs: attrs}
}

// Component returns the component name.
func (l *ComponentLogger) Component() string {
	if l == nil {
		return ""
	}
	return l.component
}

func (l *ComponentLogger) logger() *slog.Logger {
	return Logger().With(l.attrs...)
}

// Debug logs at debug level when debug is enabled.
func (l *ComponentLogger) Debug(msg string, args ...any) {
	if l == nil || !IsDebugEnabled() {
		return
	}
	l.logger().Debug(msg, args...)
}

// Info logs at info level.
func (l *ComponentLogger) Info(msg string, args ...any) {
	if l == nil {
		return
	}
	l.logger().Info(msg, args...)
}

// Warn logs at warn level.
func (l *ComponentLogger) Warn(msg string, args ...any) {
	if l == nil {
		return
	}
	l.logger().Warn(msg, args...)
}

// Error logs at error level.
func (l *ComponentLogger) Error(msg string, args ...any) {
	if l == nil {
		return
	}
	l.logger().Error(msg, args...)
}
