// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetupLogger(t *testing.T) {
	t.Setenv(EnvDebug, "")

	SetupLogger(true, FormatText)
	if !IsDebugEnabled() {
		t.Error("expected debug to be enabled")
	}
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}

	SetupLogger(false, FormatText)
	if GetLevel() != LevelInfo {
		t.Errorf("expected LevelInfo, got %v", GetLevel())
	}
	if IsDebugEnabled() {
		t.Error("expected debug to be disabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsDebugEnabledEnvVar(t *testing.T) {
	SetupLogger(false, FormatText)

	t.Setenv(EnvDebug, "true")
	if !IsDebugEnabled() {
		t.Error("expected debug to be enabled via env var")
	}

	t.Setenv(EnvDebug, "")
	if IsDebugEnabled() {
		t.Error("expected debug to be disabled")
	}
}

func TestDebugEnvVarReachesHandler(t *testing.T) {
	t.Setenv(EnvDebug, "true")

	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, FormatText)

	Debug("visible through env")
	if !strings.Contains(buf.String(), "visible through env") {
		t.Errorf("expected debug record with %s=true, got: %s", EnvDebug, buf.String())
	}
}

func TestLogOutputText(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, true, FormatText)

	Debug("test debug message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test debug message") {
		t.Errorf("expected log output to contain message, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected log output to contain key=value, got: %s", output)
	}
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, FormatJSON)

	Info("test message", "count", 42)

	output := buf.String()
	if !strings.Contains(output, `"msg":"test message"`) {
		t.Errorf("expected JSON output with msg field, got: %s", output)
	}
	if !strings.Contains(output, `"count":42`) {
		t.Errorf("expected JSON output with count field, got: %s", output)
	}
}

func TestSetLevel(t *testing.T) {
	t.Setenv(EnvDebug, "")

	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, FormatText)

	SetLevel(LevelWarn)
	if GetLevel() != LevelWarn {
		t.Errorf("expected LevelWarn, got %v", GetLevel())
	}

	Info("dropped info")
	Warn("kept warning")
	if strings.Contains(buf.String(), "dropped info") {
		t.Errorf("info should be filtered at LevelWarn, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "kept warning") {
		t.Errorf("expected warning in output, got: %s", buf.String())
	}

	SetLevel(LevelDebug)
	if !IsDebugEnabled() {
		t.Error("expected debug to be enabled after SetLevel(LevelDebug)")
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer

	SetupLogger(true, FormatText)
	SetOutput(&buf)

	Debug("test message after SetOutput")

	if !strings.Contains(buf.String(), "test message after SetOutput") {
		t.Errorf("expected output to contain message after SetOutput, got: %s", buf.String())
	}
}

func TestDebugWhenDisabled(t *testing.T) {
	t.Setenv(EnvDebug, "")

	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, FormatText)

	Debug("should not appear")
	Error("test error", "key", "value")

	output := buf.String()
	if strings.Contains(output, "should not appear") {
		t.Errorf("debug message should not appear when debug is disabled, got: %s", output)
	}
	if !strings.Contains(output, "test error") {
		t.Errorf("expected output to contain error message, got: %s", output)
	}
}
