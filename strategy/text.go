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
	"encoding"
	"reflect"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/native"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// NewTextStrategy creates an apis.Strategy that exposes types implementing
// both encoding.TextMarshaler and encoding.TextUnmarshaler as strings.
func NewTextStrategy() apis.Strategy {
	return &textStrategy{}
}

// textStrategy is a fast path ahead of the kind table: time.Time, net.IP,
// big.Int and the like read and write as their text form.
type textStrategy struct{}

// Ensure textStrategy implements apis.Strategy.
var _ apis.Strategy = (*textStrategy)(nil)

// TryWrap wraps slot when its pointer implements both text interfaces.
func (*textStrategy) TryWrap(slot reflect.Value, b apis.Binding, res apis.Resolver) (apis.Value, bool) {
	if !isText(slot.Type()) {
		return nil, false
	}
	return native.NewText(slot, b, res), true
}

func isText(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	pt := reflect.PointerTo(t)
	return pt.Implements(textMarshalerType) && pt.Implements(textUnmarshalerType)
}
