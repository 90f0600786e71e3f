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

package registry_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/config"
	"dirpx.dev/rval/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}
type T5 struct{}
type T6 struct{}
type T7 struct{}
type T8 struct{}
type T9 struct{}

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	types := []reflect.Type{
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(T2{}),
		reflect.TypeOf(T3{}), reflect.TypeOf(T4{}), reflect.TypeOf(T5{}),
		reflect.TypeOf(T6{}), reflect.TypeOf(T7{}), reflect.TypeOf(T8{}),
		reflect.TypeOf(T9{}),
	}
	classes := make([]*apis.Class, len(types))
	for i, tt := range types {
		classes[i] = &apis.Class{Name: tt.Name(), Type: tt}
		require.NoError(t, reg.Register(tt, classes[i]))
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				j := i % len(types)
				if got, ok := reg.Lookup(types[j]); !ok || got != classes[j] {
					t.Errorf("lookup failed for %v: ok=%v", types[j], ok)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(types)
				if err := reg.Register(types[j], classes[j]); err != nil {
					t.Errorf("re-register %v: %v", types[j], err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, len(types), reg.Count())
}

// TestConcurrentLoadOrBuild checks that a type is built exactly once when many
// goroutines race to derive it.
func TestConcurrentLoadOrBuild(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	var mu sync.Mutex
	builds := 0
	build := func(t reflect.Type) (*apis.Class, error) {
		mu.Lock()
		builds++
		mu.Unlock()
		return &apis.Class{Name: t.Name(), Type: t}, nil
	}

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([]*apis.Class, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			cls, err := reg.LoadOrBuild(reflect.TypeOf(&T8{}), build)
			if err != nil {
				t.Errorf("LoadOrBuild: %v", err)
				return
			}
			results[id] = cls
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 1, builds)
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}
