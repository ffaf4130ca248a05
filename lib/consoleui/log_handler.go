// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logLineMsg delivers one formatted log record to the model's log
// pane.
type logLineMsg struct {
	Line  string
	Level slog.Level
}

// logQueueSize bounds the records held while the program is not
// reading (before SetProgram, or while Update is busy). Records beyond
// it are dropped and counted.
const logQueueSize = MaxLogLines

// logSink is the state shared by a root TUILogHandler and every
// handler derived from it.
type logSink struct {
	program  atomic.Pointer[tea.Program]
	queue    chan logLineMsg
	dropped  atomic.Uint64
	start    sync.Once
	stop     sync.Once
	done     chan struct{}
	finished chan struct{}
}

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program's log pane. Records below the configured level are
// dropped.
//
// Handle never blocks: records are queued and a forwarding goroutine,
// started by SetProgram, delivers them with program.Send in order.
// This matters because the console logs from inside Update (every
// command is logged), where a synchronous Send would deadlock the
// event loop. Records logged before SetProgram wait in the queue, so
// startup messages still reach the pane.
//
// All handlers derived via WithAttrs/WithGroup share the same queue
// and program.
type TUILogHandler struct {
	level  slog.Level
	sink   *logSink
	attrs  []slog.Attr
	groups []string
}

// NewTUILogHandler creates a handler that delivers records at or above
// level. Call SetProgram once the tea.Program exists.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level: level,
		sink: &logSink{
			queue:    make(chan logLineMsg, logQueueSize),
			done:     make(chan struct{}),
			finished: make(chan struct{}),
		},
	}
}

// SetProgram sets the program that receives log lines and starts
// forwarding queued records to it. Only the first call has effect.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	sink := handler.sink
	sink.start.Do(func() {
		sink.program.Store(program)
		go sink.forward(program)
	})
}

// Close stops the forwarding goroutine and waits for it to exit.
// Records still queued are discarded. Safe to call more than once and
// before SetProgram.
func (handler *TUILogHandler) Close() {
	sink := handler.sink
	sink.stop.Do(func() { close(sink.done) })
	if sink.program.Load() != nil {
		<-sink.finished
	}
}

// Dropped returns how many records were discarded because the queue
// was full.
func (handler *TUILogHandler) Dropped() uint64 {
	return handler.sink.dropped.Load()
}

func (sink *logSink) forward(program *tea.Program) {
	defer close(sink.finished)
	for {
		select {
		case <-sink.done:
			return
		case message := <-sink.queue:
			program.Send(message)
		}
	}
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "HH:MM:SS.mmm LEVEL message (k=v, ...)"
// and queues it for the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	message := logLineMsg{
		Line:  handler.format(record),
		Level: record.Level,
	}
	select {
	case handler.sink.queue <- message:
	default:
		handler.sink.dropped.Add(1)
	}
	return nil
}

func (handler *TUILogHandler) format(record slog.Record) string {
	var builder strings.Builder
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	builder.WriteString(timestamp.Format("15:04:05.000"))
	builder.WriteByte(' ')
	builder.WriteString(record.Level.String())
	builder.WriteByte(' ')
	builder.WriteString(record.Message)

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = appendAttr(attrParts, "", attr)
	}
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = appendAttr(attrParts, prefix, attr)
		return true
	})

	if len(attrParts) > 0 {
		builder.WriteString(" (")
		builder.WriteString(strings.Join(attrParts, ", "))
		builder.WriteByte(')')
	}
	return builder.String()
}

// appendAttr flattens groups into dotted keys.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = prefix + attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, groupPrefix, member)
		}
		return parts
	}
	return append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
}

// WithAttrs returns a new handler with the given attributes appended.
// The derived handler shares the root's queue and program.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	prefixed := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		if prefix != "" {
			attr.Key = prefix + attr.Key
		}
		prefixed = append(prefixed, attr)
	}
	return &TUILogHandler{
		level:  handler.level,
		sink:   handler.sink,
		attrs:  append(sliceClone(handler.attrs), prefixed...),
		groups: sliceClone(handler.groups),
	}
}

// WithGroup returns a new handler with the given group name appended.
// The derived handler shares the root's queue and program.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &TUILogHandler{
		level:  handler.level,
		sink:   handler.sink,
		attrs:  sliceClone(handler.attrs),
		groups: append(sliceClone(handler.groups), name),
	}
}

// sliceClone returns a shallow copy of a slice. Avoids aliasing when
// building derived handlers with WithAttrs/WithGroup.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
