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
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/assign"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/native"
	"dirpx.dev/rval/rc"
)

// ErrNilClass is returned by RegisterClass for a nil class or a class
// without a type.
var ErrNilClass = errors.New("rval: class without a type")

// MakeValueRef returns a mutable view of the value ptr points to. Writes
// through the view land in the caller's storage, which must outlive it.
// A nil pointer or an unsupported type is fatal.
func MakeValueRef(ptr any) apis.Value {
	return native.Ref(Resolver(), ptr, apis.MutableRef)
}

// MakeReadonlyRef is MakeValueRef for a view that rejects writes.
func MakeReadonlyRef(ptr any) apis.Value {
	return native.Ref(Resolver(), ptr, apis.ReadonlyRef)
}

// MakeValueCopy returns a mutable value owning a deep copy of v.
func MakeValueCopy(v any) apis.Value {
	return native.Copy(Resolver(), v)
}

// Assign copies src into dst under the global coercion policy. opts are
// applied after it and may override it.
func Assign(dst, src apis.Value, opts ...apis.AssignOption) error {
	all := make([]apis.AssignOption, 0, len(opts)+1)
	all = append(all, apis.WithCoercion(Config().Coercion))
	return assign.Assign(dst, src, append(all, opts...)...)
}

// ToNative materialises v as plain Go data: bool, int64, uint64, float64,
// string, []any, map[string]any or nil.
func ToNative(v apis.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	var out any
	d := native.NewDynamic(reflect.ValueOf(&out).Elem(), apis.MutableRef, Resolver())
	defer d.Release()
	if err := assign.Assign(d, v, apis.WithCoercion(apis.CoercionDefault)); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscribe registers fn for change notifications on v.
func Subscribe(v apis.Value, fn func(target apis.Value, childKey string)) apis.Subscription {
	if fn == nil {
		diag.Fatalf("nil change callback")
	}
	return v.Subscribe(apis.ChangesHandlerFunc(fn))
}

// Unsubscribe removes a subscription. A nil subscription is ignored.
func Unsubscribe(s apis.Subscription) {
	if s != nil {
		s.Unsubscribe()
	}
}

// RegisterClass adds an explicit field table to the global registry.
func RegisterClass(cls *apis.Class) error {
	if cls == nil || cls.Type == nil {
		return errors.WithStack(ErrNilClass)
	}
	return Registry().Register(cls.Type, cls)
}

// As queries v for the capability I. The result is borrowed from v.
func As[I any](v apis.Value) (I, bool) {
	if v == nil {
		var zero I
		return zero, false
	}
	return rc.Cast[I](v)
}

// MustAs is As with a fatal check on failure.
func MustAs[I any](v apis.Value) I {
	out, ok := As[I](v)
	if !ok {
		diag.Fatalf("%s value does not provide %s", v.Kind(), reflect.TypeFor[I]())
	}
	return out
}
