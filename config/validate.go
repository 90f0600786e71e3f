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
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"dirpx.dev/rval/apis"
)

// Validate reports every invalid setting of cfg at once.
func Validate(cfg apis.Config) error {
	var err error
	if cfg.Coercion > apis.CoercionStrict {
		err = multierr.Append(err, errors.Errorf("rval(config): unknown coercion %d", cfg.Coercion))
	}
	if cfg.MaxUnwrap < 0 {
		err = multierr.Append(err, errors.Errorf("rval(config): max_unwrap must not be negative, got %d", cfg.MaxUnwrap))
	}
	if cfg.FieldTag == "" {
		err = multierr.Append(err, errors.New("rval(config): field_tag must not be empty"))
	}
	if cfg.LogLevel != "" {
		if _, perr := zerolog.ParseLevel(cfg.LogLevel); perr != nil {
			err = multierr.Append(err, errors.Wrapf(perr, "rval(config): log level %q", cfg.LogLevel))
		}
	}
	return err
}
