// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/console/lib/channel"
	"github.com/bureau-foundation/console/lib/clock"
)

// testProcessor builds a processor over a small environment and
// returns the buffer its log records are written to.
func testProcessor(t *testing.T) (*Processor, *channel.Environment, *bytes.Buffer) {
	t.Helper()

	environment := channel.NewEnvironment("test", clock.Fake(time.Unix(1735689600, 0)))
	if _, err := environment.RegisterEnum("Level", map[string]int64{"low": 1, "mid": 2, "high": 3}); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}
	register := []func() error{
		func() error {
			_, err := environment.BoolChannel("lights.on", channel.Commandable(), channel.Initial(channel.BoolValue(true)))
			return err
		},
		func() error { _, err := environment.BoolChannel("lights.locked"); return err },
		func() error {
			_, err := environment.IntChannel("lights.level", channel.KindInt32, channel.Commandable(), channel.WithEnum("Level"))
			return err
		},
		func() error {
			_, err := environment.FloatChannel("a.0.random", channel.KindDouble, channel.Commandable())
			return err
		},
		func() error { _, err := environment.IntChannel("a.0.count", channel.KindUint8, channel.Commandable()); return err },
	}
	for _, fn := range register {
		if err := fn(); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, nil))
	return NewProcessor(environment, logger), environment, &buffer
}

func boolValue(t *testing.T, environment *channel.Environment, name string) bool {
	t.Helper()
	value, err := environment.Value(name)
	if err != nil {
		t.Fatalf("Value(%s): %v", name, err)
	}
	return value.Bool()
}

func TestCommandToggleRoundTrip(t *testing.T) {
	t.Parallel()
	processor, environment, _ := testProcessor(t)

	if result := processor.Command("toggle lights.on"); !result.OK() {
		t.Fatalf("first toggle: %s", result)
	}
	if boolValue(t, environment, "lights.on") {
		t.Error("lights.on should be false after one toggle")
	}
	if result := processor.Command("toggle lights.on"); !result.OK() {
		t.Fatalf("second toggle: %s", result)
	}
	if !boolValue(t, environment, "lights.on") {
		t.Error("two toggles should restore lights.on")
	}
}

func TestCommandFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input      string
		wantReason string
	}{
		{"set lights.on", "No value specified."},
		{"set lights.on true false", "Only one value may be specified."},
		{"set unknown.chan 1", "No channel 'unknown.chan'."},
		{"toggle lights.locked", "Channel 'lights.locked' not commandable! Use -f/--force to bypass if you're sure."},
		{"toggle a.0.random", "Channel 'a.0.random' is double, not boolean."},
		{"toggle lights.level", "Channel 'lights.level' is Level, not boolean."},
		{"set a.0.count 300", "Can't set 'a.0.count' to '300': '300' out of range for uint8"},
		{"set lights.level turbo", "Can't set 'lights.level' to 'turbo'"},
		{"flip lights.on", "invalid action 'flip'"},
		{"", "the following arguments are required"},
	}
	for _, test := range tests {
		processor, _, _ := testProcessor(t)
		result := processor.Command(test.input)
		if result.OK() {
			t.Errorf("Command(%q) succeeded, want failure", test.input)
			continue
		}
		if !strings.HasPrefix(result.Reason, test.wantReason) {
			t.Errorf("Command(%q) reason = %q, want prefix %q", test.input, result.Reason, test.wantReason)
		}
	}
}

func TestCommandNotCommandableMentionsCommandable(t *testing.T) {
	t.Parallel()
	processor, environment, _ := testProcessor(t)

	result := processor.Command("toggle lights.locked")
	if result.OK() || !strings.Contains(result.Reason, "commandable") {
		t.Errorf("result = %s, want a commandable failure", result)
	}
	if boolValue(t, environment, "lights.locked") {
		t.Error("rejected command mutated the channel")
	}

	if result := processor.Command("toggle -f lights.locked"); !result.OK() {
		t.Fatalf("forced toggle: %s", result)
	}
	if !boolValue(t, environment, "lights.locked") {
		t.Error("forced toggle should flip lights.locked")
	}
}

func TestCommandSetReflectsValue(t *testing.T) {
	t.Parallel()
	processor, environment, _ := testProcessor(t)

	if result := processor.Command("set a.0.random 0.25"); !result.OK() {
		t.Fatalf("set: %s", result)
	}
	value, _ := environment.Value("a.0.random")
	if value.Float() != 0.25 {
		t.Errorf("a.0.random = %v, want 0.25", value.Float())
	}

	if result := processor.Command("set lights.level high"); !result.OK() {
		t.Fatalf("set enum: %s", result)
	}
	value, _ = environment.Value("lights.level")
	if value.Int() != 3 {
		t.Errorf("lights.level = %d, want 3", value.Int())
	}
}

func TestCommandFailedSetLeavesValue(t *testing.T) {
	t.Parallel()
	processor, environment, _ := testProcessor(t)

	before, _ := environment.Value("a.0.count")
	processor.Command("set a.0.count nope")
	after, _ := environment.Value("a.0.count")
	if !before.Equal(after) {
		t.Errorf("a.0.count changed from %v to %v on failed set", before, after)
	}
}

func TestCommandLogsOneRecordPerInvocation(t *testing.T) {
	t.Parallel()
	processor, _, buffer := testProcessor(t)

	processor.Command("toggle lights.on")
	output := buffer.String()
	if strings.Count(output, "msg=command") != 1 {
		t.Fatalf("want one command record, got:\n%s", output)
	}
	if !strings.Contains(output, "level=INFO") || !strings.Contains(output, `result=(success)`) {
		t.Errorf("success record malformed:\n%s", output)
	}

	buffer.Reset()
	processor.Command("set nope 1")
	output = buffer.String()
	if strings.Count(output, "msg=command") != 1 || !strings.Contains(output, "level=ERROR") {
		t.Errorf("failure record malformed:\n%s", output)
	}
	if strings.Contains(output, "usage:") {
		t.Error("a parseable command should not log usage")
	}
}

func TestCommandHelpLogsUsage(t *testing.T) {
	t.Parallel()
	processor, _, buffer := testProcessor(t)

	result := processor.Command("help")
	if result.OK() {
		t.Error("help should not report success")
	}
	output := buffer.String()
	if !strings.Contains(output, "usage:") {
		t.Errorf("help did not log usage:\n%s", output)
	}
	if strings.Contains(output, "Try 'help'.") {
		t.Error("help should not suggest trying help")
	}

	buffer.Reset()
	processor.Command("flip x")
	output = buffer.String()
	if !strings.Contains(output, "usage:") || !strings.Contains(output, "Try 'help'.") {
		t.Errorf("parse failure should log usage and the help hint:\n%s", output)
	}
}

func TestCommandHelpSubstringStillExecutes(t *testing.T) {
	t.Parallel()
	processor, environment, buffer := testProcessor(t)
	if _, err := environment.BoolChannel("helper.on", channel.Commandable()); err != nil {
		t.Fatalf("BoolChannel: %v", err)
	}

	if result := processor.Command("toggle helper.on"); !result.OK() {
		t.Fatalf("toggle helper.on: %s", result)
	}
	if !strings.Contains(buffer.String(), "usage:") {
		t.Error("input containing help should log usage")
	}
}

func TestSuggestion(t *testing.T) {
	t.Parallel()
	processor, _, _ := testProcessor(t)

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"set a.0.ran", "set a.0.random", true},
		{"toggle li", "toggle lights.", true},
		{"toggle -f lights.lo", "toggle -f lights.locked", true},
		{"toggle --force lights.lo", "toggle --force lights.locked", true},
		{"toggle lights.lo --force", "toggle lights.locked --force", true},
		{"set  a.0.ran 0.5", "set  a.0.random 0.5", true},
		{"set -- a.0.ran", "set -- a.0.random", true},
		{"set lights.", "", false},
		{"set a.0.random", "", false},
		{"set zzz", "", false},
		{"set", "", false},
		{"bogus a.0", "", false},
	}
	for _, test := range tests {
		got, ok := processor.Suggestion(test.input)
		if got != test.want || ok != test.wantOK {
			t.Errorf("Suggestion(%q) = %q, %v; want %q, %v", test.input, got, ok, test.want, test.wantOK)
		}
	}
}

func TestSuggestionDoesNotLog(t *testing.T) {
	t.Parallel()
	processor, _, buffer := testProcessor(t)
	processor.Suggestion("flip")
	processor.Suggestion("set a.0")
	if buffer.Len() != 0 {
		t.Errorf("Suggestion logged:\n%s", buffer.String())
	}
}
