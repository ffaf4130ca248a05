// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Action is the verb of a command.
type Action int

const (
	// ActionSet assigns a value to a channel.
	ActionSet Action = iota + 1

	// ActionToggle inverts a boolean channel.
	ActionToggle
)

var actionNames = []string{"set", "toggle"}

func (action Action) String() string {
	switch action {
	case ActionSet:
		return "set"
	case ActionToggle:
		return "toggle"
	default:
		return fmt.Sprintf("Action(%d)", int(action))
	}
}

// ParseAction resolves an action keyword. Matching is exact.
func ParseAction(name string) (Action, bool) {
	switch name {
	case "set":
		return ActionSet, true
	case "toggle":
		return ActionToggle, true
	}
	return 0, false
}

// Request is a parsed command. Values holds every positional token
// after the channel name; the processor decides how many are valid for
// the action.
type Request struct {
	Action  Action
	Channel string
	Values  []string
	Force   bool
}

// ErrHelpRequested is wrapped by the ParseError returned when the
// input asks for usage text instead of naming an action.
var ErrHelpRequested = errors.New("help requested")

// ParseError reports input that does not fit the grammar. Reason is
// the operator-facing message.
type ParseError struct {
	Reason string
	Err    error
}

func (parseError *ParseError) Error() string { return parseError.Reason }

func (parseError *ParseError) Unwrap() error { return parseError.Err }

// Parse tokenizes text on whitespace and matches it against the
// grammar. Flags may appear anywhere; "--" ends flag recognition so a
// following token starting with "-" is positional. Long flags may be
// abbreviated to any unambiguous prefix ("--fo").
func Parse(text string) (Request, error) {
	var (
		request      Request
		positionals  []string
		unrecognized []string
		flagsEnded   bool
	)

	tokens := strings.Fields(text)
	if len(tokens) > 0 && tokens[0] == "help" {
		return Request{}, &ParseError{Reason: "help requested", Err: ErrHelpRequested}
	}

	for _, token := range tokens {
		if flagsEnded || !looksLikeFlag(token) {
			positionals = append(positionals, token)
			continue
		}
		if token == "--" {
			flagsEnded = true
			continue
		}
		switch resolveFlag(token) {
		case "force":
			request.Force = true
		case "help":
			return Request{}, &ParseError{Reason: "help requested", Err: ErrHelpRequested}
		default:
			unrecognized = append(unrecognized, token)
		}
	}

	if len(positionals) >= 1 {
		action, ok := ParseAction(positionals[0])
		if !ok {
			return Request{}, &ParseError{Reason: invalidActionReason(positionals[0])}
		}
		request.Action = action
	}

	switch len(positionals) {
	case 0:
		return Request{}, &ParseError{Reason: "the following arguments are required: action, channel"}
	case 1:
		return Request{}, &ParseError{Reason: "the following arguments are required: channel"}
	}
	request.Channel = positionals[1]
	request.Values = positionals[2:]

	if len(unrecognized) > 0 {
		return Request{}, &ParseError{Reason: "unrecognized arguments: " + strings.Join(unrecognized, " ")}
	}
	return request, nil
}

// channelTokenEnd returns the byte offset just past the channel
// token in text, locating it the way Parse does. It returns -1 when
// text has no channel token.
func channelTokenEnd(text string) int {
	positionals := 0
	flagsEnded := false
	offset := 0
	for offset < len(text) {
		start := offset + strings.IndexFunc(text[offset:], func(r rune) bool { return !unicode.IsSpace(r) })
		if start < offset {
			return -1
		}
		end := len(text)
		if length := strings.IndexFunc(text[start:], unicode.IsSpace); length >= 0 {
			end = start + length
		}
		offset = end

		token := text[start:end]
		if !flagsEnded && looksLikeFlag(token) {
			if token == "--" {
				flagsEnded = true
			}
			continue
		}
		positionals++
		if positionals == 2 {
			return end
		}
	}
	return -1
}

// looksLikeFlag reports whether a token should be treated as an
// option. Negative numbers are values, not flags.
func looksLikeFlag(token string) bool {
	if len(token) < 2 || token[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(token, 64); err == nil {
		return false
	}
	return true
}

// resolveFlag maps a flag token to its canonical name, or "" when the
// token names no known flag.
func resolveFlag(token string) string {
	switch token {
	case "-f":
		return "force"
	case "-h":
		return "help"
	}
	if !strings.HasPrefix(token, "--") || len(token) < 3 {
		return ""
	}
	name := token[2:]
	var match string
	for _, candidate := range []string{"force", "help"} {
		if strings.HasPrefix(candidate, name) {
			if match != "" {
				return ""
			}
			match = candidate
		}
	}
	return match
}

func invalidActionReason(word string) string {
	reason := fmt.Sprintf("invalid action '%s' (choose from 'set', 'toggle')", word)
	if suggestion := suggestAction(word); suggestion != "" {
		reason += fmt.Sprintf(" Did you mean '%s'?", suggestion)
	}
	return reason
}

// suggestAction returns the action keyword closest to word, or "" when
// nothing is within an edit distance of 3.
func suggestAction(word string) string {
	bestName := ""
	bestDistance := 4
	for _, name := range actionNames {
		distance := levenshtein(word, name)
		if distance < bestDistance {
			bestDistance = distance
			bestName = name
		}
	}
	return bestName
}

// levenshtein computes the edit distance between two strings using a
// single row of the distance matrix.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}
	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous = current
	}
	return previous[len(a)]
}

// Usage returns the grammar help text logged for "help" requests and
// unparseable input.
func Usage() string {
	return `usage: {set,toggle} [-h] [-f] channel [extra ...]

positional arguments:
  {set,toggle}  command to run
  channel       channel to perform action on
  extra         value for 'set' (exactly one)

options:
  -h, --help    show this help message and exit
  -f, --force   operate on a channel even if it's not commandable`
}
