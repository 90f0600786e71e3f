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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "rval.toml", `
coercion = "allow"
debug_checks = false
max_unwrap = 3
field_tag = "json"

[log]
level = "debug"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, apis.Config{
		Coercion:    apis.CoercionAllow,
		DebugChecks: false,
		MaxUnwrap:   3,
		FieldTag:    "json",
		LogLevel:    "debug",
	}, cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "rval.yaml", `
coercion: strict
log:
  level: info
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, apis.CoercionStrict, cfg.Coercion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.DebugChecks, "absent keys keep defaults")
	assert.Equal(t, config.DefaultMaxUnwrap, cfg.MaxUnwrap)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
	t.Run("unknown extension", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "rval.ini", "x=1"))
		assert.True(t, errors.Is(err, config.ErrUnknownFormat))
	})
	t.Run("bad coercion", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "rval.toml", `coercion = "sometimes"`))
		assert.ErrorContains(t, err, "sometimes")
	})
	t.Run("invalid values", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "rval.yml", "max_unwrap: -4\nfield_tag: \"\"\n"))
		assert.ErrorContains(t, err, "max_unwrap")
		assert.ErrorContains(t, err, "field_tag")
	})
	t.Run("malformed toml", func(t *testing.T) {
		_, err := config.Parse([]byte("coercion = "), config.FormatTOML)
		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(config.EnvCoercion, "Allow")
	t.Setenv(config.EnvDebugChecks, "false")
	t.Setenv(config.EnvLogLevel, "WARN")
	t.Setenv(config.EnvFieldTag, "yaml")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, apis.CoercionAllow, cfg.Coercion)
	assert.False(t, cfg.DebugChecks)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "yaml", cfg.FieldTag)
}

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Setenv(config.EnvCoercion, "strict")
	cfg, err := config.Parse([]byte(`coercion = "allow"`), config.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, apis.CoercionStrict, cfg.Coercion)
}

func TestApplyEnvErrors(t *testing.T) {
	t.Setenv(config.EnvDebugChecks, "maybe")
	_, err := config.FromEnv()
	assert.ErrorContains(t, err, config.EnvDebugChecks)
}
