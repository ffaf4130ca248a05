// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/console/lib/channel"
)

// Processor executes command lines against one channel provider.
// It is not safe for concurrent use; the UI drives it from a single
// goroutine. The provider itself may be shared with producers.
type Processor struct {
	provider channel.Provider
	logger   *slog.Logger
}

// NewProcessor creates a processor for provider. Every command is
// logged to logger.
func NewProcessor(provider channel.Provider, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{provider: provider, logger: logger}
}

// Provider returns the provider commands are applied to.
func (processor *Processor) Provider() channel.Provider { return processor.provider }

// Command parses and executes one input line. It never panics; every
// failure is reported through the returned Result. Input containing
// "help" anywhere, or input that fails to parse, also logs the usage
// text.
func (processor *Processor) Command(text string) Result {
	request, parseErr := Parse(text)
	wantsHelp := strings.Contains(text, "help")

	if parseErr != nil || wantsHelp {
		processor.logger.Info(Usage())
	}

	var result Result
	if parseErr != nil {
		result = Failed(parseErr.Error())
		if !wantsHelp {
			processor.logger.Info("Try 'help'.")
		}
	} else {
		result = processor.execute(request)
	}

	if result.OK() {
		processor.logger.Info("command", "input", text, "result", result.String())
	} else {
		processor.logger.Error("command", "input", text, "result", result.String())
	}
	return result
}

// execute validates a request fully before mutating anything.
func (processor *Processor) execute(request Request) Result {
	target, ok := processor.provider.Lookup(request.Channel)
	if !ok {
		return Failed(fmt.Sprintf("No channel '%s'.", request.Channel))
	}

	if !target.Commandable && !request.Force {
		return Failed(fmt.Sprintf("Channel '%s' not commandable! Use -f/--force to bypass if you're sure.", request.Channel))
	}

	switch request.Action {
	case ActionToggle:
		if !target.Kind.IsBoolean() {
			return Failed(fmt.Sprintf("Channel '%s' is %s, not boolean.", request.Channel, target.TypeName()))
		}
		if err := processor.provider.Toggle(request.Channel); err != nil {
			return Failed(providerReason(err))
		}

	case ActionSet:
		switch len(request.Values) {
		case 0:
			return Failed("No value specified.")
		case 1:
		default:
			return Failed("Only one value may be specified.")
		}
		if err := processor.provider.Set(request.Channel, request.Values[0]); err != nil {
			return Failed(providerReason(err))
		}

	default:
		return Failed(fmt.Sprintf("Unsupported action '%s'.", request.Action))
	}

	return Succeeded
}

func providerReason(err error) string {
	var setError *channel.SetError
	if errors.As(err, &setError) {
		return setError.Error()
	}
	return err.Error()
}

// Suggestion completes the channel name in a partially typed command.
// It returns partial with the missing part of the channel name
// inserted right after the channel token, and true when that token
// can be extended. Spacing, flags and values are kept as typed. Input
// that does not parse, or whose channel cannot be extended, yields
// ("", false). Nothing is logged.
func (processor *Processor) Suggestion(partial string) (string, bool) {
	request, err := Parse(partial)
	if err != nil {
		return "", false
	}

	suffix, ok := channel.Suggest(processor.provider.Names(), request.Channel)
	if !ok || suffix == "" {
		return "", false
	}
	end := channelTokenEnd(partial)
	if end < 0 {
		return "", false
	}
	return partial[:end] + suffix + partial[end:], true
}
