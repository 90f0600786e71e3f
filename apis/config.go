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

package apis

// Config carries the process-wide knobs of the value layer.
// It is passed by value and should be treated as immutable.
type Config struct {
	// Coercion is the default conversion policy of Assign.
	Coercion TypeCoercion

	// DebugChecks turns caller-misuse diagnostics into panics.
	DebugChecks bool

	// MaxUnwrap limits pointer unwrapping when normalizing registry keys.
	MaxUnwrap int

	// FieldTag is the struct tag consulted when deriving field tables.
	FieldTag string

	// LogLevel is a zerolog level name. Empty keeps the current level.
	LogLevel string
}
