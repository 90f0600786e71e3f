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

package diag

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// EnvLogNoColor disables ANSI colors on the default console logger.
const EnvLogNoColor = "RVAL_LOG_NOCOLOR"

// DefaultLevel is the level of the default logger.
const DefaultLevel = zerolog.WarnLevel

var logger atomic.Pointer[zerolog.Logger]

func init() {
	noColor, _ := strconv.ParseBool(os.Getenv(EnvLogNoColor))
	l := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}).Level(DefaultLevel).With().Timestamp().Str("lib", "rval").Logger()
	logger.Store(&l)
}

// Logger returns the current logger.
func Logger() *zerolog.Logger {
	return logger.Load()
}

// SetLogger replaces the logger used by all rval packages.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// SetLevel parses level and applies it to the current logger.
// An empty level leaves the logger unchanged.
func SetLevel(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "rval(diag): invalid log level %q", level)
	}
	l := Logger().Level(lvl)
	logger.Store(&l)
	return nil
}

// Configure applies a log level and the debug-check switch in one step.
func Configure(level string, debugChecks bool) error {
	SetEnabled(debugChecks)
	return SetLevel(level)
}
