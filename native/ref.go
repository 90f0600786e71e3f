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

package native

import (
	"reflect"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/rc"
	uref "dirpx.dev/rval/utils/reflect"
)

// valueRef wraps an apis.Value slot. The slot holds a strong reference to
// its target.
type valueRef struct{ node }

// NewValueRef wraps an apis.Value slot.
func NewValueRef(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.ValueRef {
	return rc.CreateInstance[valueRef, apis.ValueRef](nil, func(v *valueRef) {
		v.setup(v, slot, b, res)
	})
}

func (r *valueRef) Kind() apis.Kind { return apis.KindReference }

func (r *valueRef) current() apis.Value {
	if r.slot.IsNil() {
		return nil
	}
	return r.slot.Interface().(apis.Value)
}

func (r *valueRef) Target() apis.Value {
	t := r.current()
	if t != nil {
		t.AddRef()
	}
	return t
}

func (r *valueRef) Retarget(v apis.Value) error {
	if err := r.checkMutable(); err != nil {
		return err
	}
	old := r.current()
	if v == nil {
		r.slot.SetZero()
	} else {
		v.AddRef()
		r.slot.Set(reflect.ValueOf(&v).Elem())
	}
	if old != nil {
		old.Release()
	}
	r.NotifyChanged(nil)
	return nil
}

// Ref wraps the value ptr points to. Unsupported types and nil pointers
// are fatal.
func Ref(res apis.Resolver, ptr any, b apis.Binding) apis.Value {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		diag.Fatalf("value reference requires a non-nil pointer, got %T", ptr)
	}
	return wrapOrDie(res, rv.Elem(), b)
}

// Copy wraps a deep copy of v that the returned value owns.
func Copy(res apis.Resolver, v any) apis.Value {
	if v == nil {
		diag.Fatalf("value copy of untyped nil")
	}
	return wrapOrDie(res, uref.DeepCopy(reflect.ValueOf(v)), apis.OwnedCopy)
}
