// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil is the diagnostics logger used inside termkit.
//
// It is separate from the console output the library renders for users: the
// console prints styled lines to a terminal, while logutil records what the
// library itself is doing (plugin registration, level changes, fatal exit
// requests, application lifecycle) through log/slog on stderr.
//
// # Basic Usage
//
//	logutil.SetupLogger(debug, logutil.FormatText)
//
//	log := logutil.NewLogger("console")
//	log.Debug("plugin registered", "pattern", "{{%s}}")
//
// # Debug Mode
//
// Debug records are written when SetupLogger is called with debug=true or
// when TERMKIT_DEBUG=true is set in the environment.
//
// # Formats
//
// FormatJSON writes one JSON object per record:
//
//	{"time":"2024-01-15T10:30:00Z","level":"DEBUG","msg":"fatal requested","component":"console"}
//
// FormatText writes logfmt-style key=value records.
package logutil
