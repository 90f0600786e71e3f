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

// Package reflect holds reflection helpers shared by the registry, the
// strategies and the native adapters.
package reflect

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotStruct indicates that the provided type (after unwrapping
	// pointers) is not a struct and cannot carry a field table.
	ErrReflectNotStruct = errors.New("reflect: type is not a struct")
)

// Normalize strips pointer indirections (at most cfg.MaxUnwrap) and returns
// the struct type underneath, or an error if there is none.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Pointer && i < maxUnwrap; i++ {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrReflectNotStruct, "%s", t)
	}
	return t, nil
}

// Indirect follows non-nil pointers up to maxUnwrap levels.
func Indirect(v reflect.Value, maxUnwrap int) reflect.Value {
	for i := 0; i < maxUnwrap && v.Kind() == reflect.Pointer && !v.IsNil(); i++ {
		v = v.Elem()
	}
	return v
}
