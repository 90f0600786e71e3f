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

package rval

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/builder"
	"dirpx.dev/rval/config"
	"dirpx.dev/rval/diag"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rval: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rval: builder returned nil resolver")
)

// buildMu serializes writers so partially built snapshots are never published.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store.
// Writers create a new state and swap it in.
type state struct {
	cfg apis.Config
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg and pres pin the registry and resolver against rebuilds.
	preg bool
	pres bool
}

// rebuild derives the layers of next that are not pinned from its config
// and builder, then publishes it. Callers hold buildMu.
func rebuild(old, next *state) {
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(next)
}

// update publishes a copy of the current state modified by fn, without
// rebuilding anything.
func update(fn func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()
	next := *st.Load()
	fn(&next)
	st.Store(&next)
}

// SetAll replaces every global component at once. Nil arguments leave the
// component unchanged (registry and resolver are rebuilt instead) and
// clear its pin; non-nil registry and resolver are pinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := &state{cfg: old.cfg, bld: old.bld, reg: reg, res: res, preg: reg != nil, pres: res != nil}
	if cfg != nil {
		if err := applyConfig(*cfg); err != nil {
			return err
		}
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	rebuild(old, next)
	return nil
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig validates cfg, pushes its log level and debug checks into the
// diagnostics layer and rebuilds the unpinned layers.
func SetConfig(cfg apis.Config) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	if err := applyConfig(cfg); err != nil {
		return err
	}
	old := st.Load()
	next := *old
	next.cfg = cfg
	rebuild(old, &next)
	return nil
}

func applyConfig(cfg apis.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return diag.Configure(cfg.LogLevel, cfg.DebugChecks)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. The resolver is rebuilt
// over it unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.reg = reg
	next.preg = true
	rebuild(old, &next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(s *state) {
		s.res = res
		s.pres = true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds the unpinned layers.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.bld = b
	rebuild(old, &next)
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops rebuilds of the global registry.
func PinRegistry() {
	update(func(s *state) { s.preg = true })
}

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() {
	update(func(s *state) { s.preg = false })
}

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops rebuilds of the global resolver.
func PinResolver() {
	update(func(s *state) { s.pres = true })
}

// UnpinResolver lets the global resolver be rebuilt again.
func UnpinResolver() {
	update(func(s *state) { s.pres = false })
}
