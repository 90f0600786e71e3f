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
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"dirpx.dev/rval/apis"
)

// ErrUnknownFormat is returned by Load for files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("rval(config): unknown config file format")

// file is the on-disk shape of a config. Absent keys keep their defaults.
type file struct {
	Coercion    *string `toml:"coercion" yaml:"coercion"`
	DebugChecks *bool   `toml:"debug_checks" yaml:"debug_checks"`
	MaxUnwrap   *int    `toml:"max_unwrap" yaml:"max_unwrap"`
	FieldTag    *string `toml:"field_tag" yaml:"field_tag"`
	Log         struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults,
// applies environment overrides and validates the result.
func Load(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, errors.Wrap(err, "rval(config): read")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return Parse(data, FormatTOML)
	case ".yaml", ".yml":
		return Parse(data, FormatYAML)
	}
	return apis.Config{}, errors.Wrapf(ErrUnknownFormat, "%s", path)
}

// Format names a config encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Parse decodes data in the given format over the defaults, applies
// environment overrides and validates the result.
func Parse(data []byte, format Format) (apis.Config, error) {
	var f file
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return apis.Config{}, errors.Wrap(err, "rval(config): decode toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return apis.Config{}, errors.Wrap(err, "rval(config): decode yaml")
		}
	default:
		return apis.Config{}, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}

	cfg := DefaultConfig()
	if err := f.apply(&cfg); err != nil {
		return apis.Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return apis.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

func (f *file) apply(cfg *apis.Config) error {
	if f.Coercion != nil {
		c, err := apis.ParseTypeCoercion(*f.Coercion)
		if err != nil {
			return errors.Wrap(err, "rval(config): coercion")
		}
		cfg.Coercion = c
	}
	if f.DebugChecks != nil {
		cfg.DebugChecks = *f.DebugChecks
	}
	if f.MaxUnwrap != nil {
		cfg.MaxUnwrap = *f.MaxUnwrap
	}
	if f.FieldTag != nil {
		cfg.FieldTag = *f.FieldTag
	}
	if f.Log.Level != "" {
		cfg.LogLevel = f.Log.Level
	}
	return nil
}
