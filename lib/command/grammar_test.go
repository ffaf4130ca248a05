// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Request
	}{
		{"toggle lights.on", Request{Action: ActionToggle, Channel: "lights.on", Values: []string{}}},
		{"set a.0.random 0.5", Request{Action: ActionSet, Channel: "a.0.random", Values: []string{"0.5"}}},
		{"  set   x   1  2 ", Request{Action: ActionSet, Channel: "x", Values: []string{"1", "2"}}},
		{"set -f x 1", Request{Action: ActionSet, Channel: "x", Values: []string{"1"}, Force: true}},
		{"set x 1 --force", Request{Action: ActionSet, Channel: "x", Values: []string{"1"}, Force: true}},
		{"-f toggle x", Request{Action: ActionToggle, Channel: "x", Values: []string{}, Force: true}},
		{"set --fo x 1", Request{Action: ActionSet, Channel: "x", Values: []string{"1"}, Force: true}},
		{"set x -5", Request{Action: ActionSet, Channel: "x", Values: []string{"-5"}}},
		{"set x -- -y", Request{Action: ActionSet, Channel: "x", Values: []string{"-y"}}},
	}
	for _, test := range tests {
		got, err := Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", test.input, err)
			continue
		}
		if got.Action != test.want.Action || got.Channel != test.want.Channel ||
			got.Force != test.want.Force || !slices.Equal(got.Values, test.want.Values) {
			t.Errorf("Parse(%q) = %+v, want %+v", test.input, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input      string
		wantReason string
	}{
		{"", "the following arguments are required: action, channel"},
		{"   ", "the following arguments are required: action, channel"},
		{"set", "the following arguments are required: channel"},
		{"-f", "the following arguments are required: action, channel"},
		{"flip x", "invalid action 'flip' (choose from 'set', 'toggle')"},
		{"set x 1 -x", "unrecognized arguments: -x"},
		{"set --bogus x 1 -q", "unrecognized arguments: --bogus -q"},
	}
	for _, test := range tests {
		_, err := Parse(test.input)
		var parseError *ParseError
		if !errors.As(err, &parseError) {
			t.Errorf("Parse(%q) error = %v, want *ParseError", test.input, err)
			continue
		}
		if !strings.HasPrefix(parseError.Reason, test.wantReason) {
			t.Errorf("Parse(%q) reason = %q, want prefix %q", test.input, parseError.Reason, test.wantReason)
		}
	}
}

func TestParseSuggestsCloseAction(t *testing.T) {
	t.Parallel()

	_, err := Parse("toggel x")
	if err == nil || !strings.Contains(err.Error(), "Did you mean 'toggle'?") {
		t.Errorf("Parse(toggel x) error = %v, want a toggle suggestion", err)
	}

	_, err = Parse("completely x")
	if err == nil || strings.Contains(err.Error(), "Did you mean") {
		t.Errorf("Parse(completely x) error = %v, want no suggestion", err)
	}
}

func TestParseHelp(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"help", "-h", "set --help", "toggle x -h"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrHelpRequested) {
			t.Errorf("Parse(%q) error = %v, want ErrHelpRequested", input, err)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int
	}{
		{"", "set", 3},
		{"set", "set", 0},
		{"sett", "set", 1},
		{"toggel", "toggle", 2},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestResultString(t *testing.T) {
	t.Parallel()
	if got := Succeeded.String(); got != "(success)" {
		t.Errorf("Succeeded.String() = %q", got)
	}
	if got := Failed("No value specified.").String(); got != "(failure) No value specified." {
		t.Errorf("Failed.String() = %q", got)
	}
	if Failed("x").OK() || !Succeeded.OK() {
		t.Error("OK() disagrees with Success")
	}
}
