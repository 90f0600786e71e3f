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

package config

import (
	"dirpx.dev/rval/apis"
)

const (
	// DefaultCoercion represents the default for Coercion.
	// Integers and floats convert into each other; strings do not.
	DefaultCoercion = apis.CoercionDefault
	// DefaultDebugChecks represents the default for DebugChecks.
	// Caller misuse panics unless explicitly disabled.
	DefaultDebugChecks = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultFieldTag represents the default for FieldTag.
	DefaultFieldTag = "rval"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.FieldTag == "" {
		cfg.FieldTag = DefaultFieldTag
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Coercion:    DefaultCoercion,
		DebugChecks: DefaultDebugChecks,
		MaxUnwrap:   DefaultMaxUnwrap,
		FieldTag:    DefaultFieldTag,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithCoercion sets the default coercion of Assign.
func WithCoercion(c apis.TypeCoercion) Option {
	return func(cfg *apis.Config) {
		cfg.Coercion = c
	}
}

// WithDebugChecks sets the DebugChecks option.
func WithDebugChecks(on bool) Option {
	return func(cfg *apis.Config) {
		cfg.DebugChecks = on
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithFieldTag sets the struct tag used to derive field tables.
// An empty tag resets to the default.
func WithFieldTag(tag string) Option {
	return func(c *apis.Config) {
		if tag == "" {
			tag = DefaultFieldTag
		}
		c.FieldTag = tag
	}
}

// WithLogLevel sets the zerolog level name applied with the config.
func WithLogLevel(level string) Option {
	return func(c *apis.Config) {
		c.LogLevel = level
	}
}
