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
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvCoercion    = "RVAL_COERCION"
	EnvDebugChecks = "RVAL_DEBUG_CHECKS"
	EnvLogLevel    = "RVAL_LOG_LEVEL"
	EnvFieldTag    = "RVAL_FIELD_TAG"
)

// ApplyEnv overrides cfg with the RVAL_* environment variables that are set.
func ApplyEnv(cfg *apis.Config) error {
	if raw, ok := lookup(EnvCoercion); ok {
		c, err := apis.ParseTypeCoercion(raw)
		if err != nil {
			return errors.Wrap(err, EnvCoercion)
		}
		cfg.Coercion = c
	}
	if raw, ok := lookup(EnvDebugChecks); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.Wrap(err, EnvDebugChecks)
		}
		cfg.DebugChecks = v
	}
	if raw, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(raw)
	}
	if raw, ok := lookup(EnvFieldTag); ok {
		cfg.FieldTag = raw
	}
	return nil
}

// FromEnv returns the default config with environment overrides applied.
func FromEnv() (apis.Config, error) {
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func lookup(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}
