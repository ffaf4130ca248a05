// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

// Result is the outcome of one command. A failed result always
// carries a Reason; a successful one never does.
type Result struct {
	Success bool
	Reason  string
}

// Succeeded is the shared success result.
var Succeeded = Result{Success: true}

// Failed builds a failure result.
func Failed(reason string) Result {
	return Result{Reason: reason}
}

// OK reports whether the command succeeded.
func (result Result) OK() bool { return result.Success }

func (result Result) String() string {
	if result.Success {
		return "(success)"
	}
	return "(failure) " + result.Reason
}
