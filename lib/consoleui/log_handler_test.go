// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"log/slog"
	"regexp"
	"strings"
	"testing"
)

var logLinePattern = regexp.MustCompile(`^\d\d:\d\d:\d\d\.\d\d\d `)

func receive(t *testing.T, handler *TUILogHandler) logLineMsg {
	t.Helper()
	select {
	case message := <-handler.sink.queue:
		return message
	default:
		t.Fatal("no record queued")
		return logLineMsg{}
	}
}

func TestTUILogHandlerFormat(t *testing.T) {
	t.Parallel()

	handler := NewTUILogHandler(slog.LevelInfo)
	logger := slog.New(handler)
	logger.Info("command", "input", "set a 1", "result", "(success)")

	message := receive(t, handler)
	if !logLinePattern.MatchString(message.Line) {
		t.Errorf("line %q does not start with a timestamp", message.Line)
	}
	want := "INFO command (input=set a 1, result=(success))"
	if !strings.HasSuffix(message.Line, want) {
		t.Errorf("line = %q, want suffix %q", message.Line, want)
	}
	if message.Level != slog.LevelInfo {
		t.Errorf("level = %v, want INFO", message.Level)
	}
}

func TestTUILogHandlerLevel(t *testing.T) {
	t.Parallel()

	handler := NewTUILogHandler(slog.LevelInfo)
	logger := slog.New(handler)
	logger.Debug("hidden")
	if len(handler.sink.queue) != 0 {
		t.Fatalf("debug record queued below INFO")
	}
	logger.Error("shown")
	if message := receive(t, handler); message.Level != slog.LevelError {
		t.Errorf("level = %v, want ERROR", message.Level)
	}
}

func TestTUILogHandlerAttrsAndGroups(t *testing.T) {
	t.Parallel()

	handler := NewTUILogHandler(slog.LevelInfo)
	logger := slog.New(handler).With("environment", "local").WithGroup("sample")
	logger.Info("dispatch", "count", 3, slog.Group("timing", "ms", 1.5))

	want := "INFO dispatch (environment=local, sample.count=3, sample.timing.ms=1.5)"
	if got := receive(t, handler).Line; !strings.HasSuffix(got, want) {
		t.Errorf("line = %q, want suffix %q", got, want)
	}

	// Derived handlers share the root's queue.
	slog.New(handler).Info("root")
	if got := receive(t, handler).Line; !strings.HasSuffix(got, "INFO root") {
		t.Errorf("line = %q, want suffix %q", got, "INFO root")
	}
}

func TestTUILogHandlerDropsWhenFull(t *testing.T) {
	t.Parallel()

	handler := NewTUILogHandler(slog.LevelInfo)
	logger := slog.New(handler)
	for range logQueueSize + 5 {
		logger.Info("flood")
	}
	if got := handler.Dropped(); got != 5 {
		t.Errorf("Dropped = %d, want 5", got)
	}
	// Close before SetProgram must not block.
	handler.Close()
	handler.Close()
}
