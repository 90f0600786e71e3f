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

package resolver

import (
	"reflect"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/diag"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryWrap calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Wrap runs strategies in order until one handles the slot. A slot that is
// not addressable is first copied into fresh storage. Returns nil if no
// strategy produced an adapter.
func (r *chain) Wrap(slot reflect.Value, b apis.Binding) apis.Value {
	if !slot.IsValid() {
		return nil
	}
	if !slot.CanAddr() {
		boxed := reflect.New(slot.Type()).Elem()
		boxed.Set(slot)
		slot = boxed
	}
	for _, s := range r.strats {
		if v, ok := s.TryWrap(slot, b, r); ok {
			return v
		}
	}
	diag.Logger().Debug().Stringer("type", slot.Type()).Msg("no adapter for type")
	return nil
}
