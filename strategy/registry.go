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

package strategy

import (
	"reflect"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/native"
)

// NewRegistryStrategy creates an apis.Strategy that wraps structs with a
// class registered in reg.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults explicit registrations only; it never derives.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryWrap wraps a struct slot whose type has a registered class.
func (s *registryStrategy) TryWrap(slot reflect.Value, b apis.Binding, res apis.Resolver) (apis.Value, bool) {
	if s.reg == nil || slot.Kind() != reflect.Struct {
		return nil, false
	}
	cls, ok := s.reg.Lookup(slot.Type())
	if !ok {
		return nil, false
	}
	return native.NewObject(slot, b, res, cls), true
}
