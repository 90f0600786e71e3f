/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package diag carries the diagnostics shared by every rval package: the
// zerolog logger and the fatal checks used to report programming errors.
//
// Two severities exist. Fatalf always panics with a *Violation; it guards
// invariants whose violation leaves the process in an unknown state
// (malformed instance layout, allocation failure, failed capability casts).
// Failuref reports caller misuse (mutating an immutable value, out of range
// indexes, clearing a container with live children). It panics only while
// debug checks are enabled; otherwise it logs and the checked API returns
// an error.
package diag

import (
	"fmt"
	"sync/atomic"
)

// Violation is the panic value raised by Fatalf and Failuref.
type Violation struct {
	Msg string
}

// Error implements error.
func (v *Violation) Error() string {
	return "rval: " + v.Msg
}

var checks atomic.Bool

func init() {
	checks.Store(true)
}

// Enabled reports whether debug checks are active.
func Enabled() bool {
	return checks.Load()
}

// SetEnabled turns debug checks on or off and returns the previous setting.
func SetEnabled(on bool) bool {
	return checks.Swap(on)
}

// Fatalf logs the violation and panics.
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	Logger().Error().Caller(1).Str("violation", msg).Msg("fatal check failed")
	panic(&Violation{Msg: msg})
}

// Failuref panics like Fatalf when debug checks are enabled and only logs
// otherwise.
func Failuref(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if checks.Load() {
		Logger().Error().Caller(1).Str("violation", msg).Msg("debug check failed")
		panic(&Violation{Msg: msg})
	}
	Logger().Warn().Caller(1).Str("violation", msg).Msg("debug check failed")
}

// Checkf calls Failuref when cond is false and returns cond.
func Checkf(cond bool, format string, args ...any) bool {
	if !cond {
		Failuref(format, args...)
	}
	return cond
}
