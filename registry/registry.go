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

package registry

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/config"
	"dirpx.dev/rval/diag"
	uref "dirpx.dev/rval/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("rval(registry): nil reflect.Type provided")
	// ErrNilClass is returned when a nil class is provided or built.
	ErrNilClass = errors.New("rval(registry): nil class provided")
	// ErrClassTypeMismatch is returned when a class describes another type
	// than the one it is registered for.
	ErrClassTypeMismatch = errors.New("rval(registry): class describes a different type")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different class.
	ErrConflictingRegistration = errors.New("rval(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency, the counter and builds.
	mu sync.Mutex
	// m maps the normalized struct type to its class.
	m sync.Map // map[reflect.Type]*apis.Class
	// count tracks the number of registered entries.
	count int
}

// Register associates the struct type behind t with cls.
// It is idempotent for the same (type, class) pair.
func (r *registry) Register(t reflect.Type, cls *apis.Class) error {
	if t == nil {
		return ErrNilType
	}
	if cls == nil {
		return ErrNilClass
	}
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}
	if cls.Type != nil && cls.Type != b {
		return errors.Wrapf(ErrClassTypeMismatch, "%s registered for %s", cls.Type, b)
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		return sameClass(old.(*apis.Class), cls)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		return sameClass(old.(*apis.Class), cls)
	}
	r.store(b, cls)
	return nil
}

func sameClass(old, cls *apis.Class) error {
	if old == cls {
		return nil
	}
	return ErrConflictingRegistration
}

func (r *registry) store(t reflect.Type, cls *apis.Class) {
	if cls.Type == nil {
		cls.Type = t
	}
	r.m.Store(t, cls)
	r.count++
	diag.Logger().Debug().Stringer("type", t).Int("fields", cls.Len()).Msg("class registered")
}

// Lookup returns the class registered for t.
func (r *registry) Lookup(t reflect.Type) (*apis.Class, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(*apis.Class), true
	}
	return nil, false
}

// LoadOrBuild returns the registered class of t, building it under the write
// lock when absent.
func (r *registry) LoadOrBuild(t reflect.Type, build func(reflect.Type) (*apis.Class, error)) (*apis.Class, error) {
	if t == nil {
		return nil, ErrNilType
	}
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, err
	}
	if v, ok := r.m.Load(b); ok {
		return v.(*apis.Class), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.m.Load(b); ok {
		return v.(*apis.Class), nil
	}
	cls, err := build(b)
	if err != nil {
		return nil, err
	}
	if cls == nil {
		return nil, ErrNilClass
	}
	if cls.Type != nil && cls.Type != b {
		return nil, errors.Wrapf(ErrClassTypeMismatch, "%s built for %s", cls.Type, b)
	}
	r.store(b, cls)
	return cls, nil
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:  key.(reflect.Type),
			Class: value.(*apis.Class),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
