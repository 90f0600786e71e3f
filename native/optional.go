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
	"dirpx.dev/rval/assign"
	"dirpx.dev/rval/rc"
	uref "dirpx.dev/rval/utils/reflect"
)

// optional wraps a *T slot. A nil pointer is the empty state.
type optional struct{ node }

// NewOptional wraps a pointer slot.
func NewOptional(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.OptionalValue {
	return rc.CreateInstance[optional, apis.OptionalValue](nil, func(v *optional) {
		v.setup(v, slot, b, res)
	})
}

func (o *optional) Kind() apis.Kind { return apis.KindOptional }

func (o *optional) HasValue() bool { return !o.slot.IsNil() }

func (o *optional) Get() apis.Value {
	if o.slot.IsNil() {
		return nil
	}
	return o.adopt(o.wrap(o.slot.Elem(), o.childBinding()), "", nil)
}

func (o *optional) Set(src apis.Value, opts ...apis.AssignOption) error {
	if err := o.checkMutable(); err != nil {
		return err
	}
	if src == nil {
		return o.Reset()
	}
	created := false
	if o.slot.IsNil() {
		o.slot.Set(reflect.New(o.slot.Type().Elem()))
		created = true
	}
	if err := o.assignInto(o.slot.Elem(), src, opts); err != nil {
		if created {
			uref.ReleaseRefs(o.slot.Elem())
			o.slot.SetZero()
		}
		return err
	}
	o.NotifyChanged(nil)
	return nil
}

func (o *optional) Reset() error {
	if err := o.checkMutable(); err != nil {
		return err
	}
	if o.slot.IsNil() {
		return nil
	}
	o.drop(o.slot)
	o.slot.SetZero()
	o.NotifyChanged(nil)
	return nil
}

var (
	anySliceType = reflect.TypeFor[[]any]()
	anyMapType   = reflect.TypeFor[map[string]any]()
)

// dynamic wraps an empty interface slot. Its content is vended as a boxed
// copy; assigning a value of a different shape replaces the content with
// plain Go data (bool, int64, uint64, float64, string, []any,
// map[string]any).
type dynamic struct{ node }

// NewDynamic wraps an `any` slot.
func NewDynamic(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.OptionalValue {
	return rc.CreateInstance[dynamic, apis.OptionalValue](nil, func(v *dynamic) {
		v.setup(v, slot, b, res)
	})
}

func (d *dynamic) Kind() apis.Kind { return apis.KindOptional }

func (d *dynamic) HasValue() bool { return !d.slot.IsNil() }

func (d *dynamic) Get() apis.Value {
	if d.slot.IsNil() {
		return nil
	}
	return d.vendCopy(d.slot, "", d.childBinding(), d.slot.Set)
}

func (d *dynamic) Set(src apis.Value, opts ...apis.AssignOption) error {
	if err := d.checkMutable(); err != nil {
		return err
	}
	if src == nil {
		return d.Reset()
	}
	switch src.Kind() {
	case apis.KindOptional, apis.KindReference:
		return assign.Assign(d.self, src, opts...)
	}
	if !d.slot.IsNil() {
		if _, ok := d.slot.Interface().(apis.Value); !ok {
			content := box(d.slot.Elem())
			cur := d.wrap(content, apis.MutableRef)
			same := sameShape(cur.Kind(), src.Kind())
			var err error
			if same {
				err = assign.Assign(cur, src, opts...)
			}
			cur.Release()
			if same {
				if err != nil {
					return err
				}
				d.slot.Set(content)
				d.NotifyChanged(nil)
				return nil
			}
		}
	}
	content, ok := materialize(src)
	if !ok {
		return apis.Mismatch(apis.KindOptional, src.Kind(), "no plain Go representation")
	}
	if err := d.assignInto(content, src, opts); err != nil {
		uref.ReleaseRefs(content)
		return err
	}
	d.drop(d.slot)
	d.slot.Set(content)
	d.NotifyChanged(nil)
	return nil
}

func (d *dynamic) Reset() error {
	if err := d.checkMutable(); err != nil {
		return err
	}
	if d.slot.IsNil() {
		return nil
	}
	d.drop(d.slot)
	d.slot.SetZero()
	d.NotifyChanged(nil)
	return nil
}

// sameShape reports whether content of kind have can absorb src of kind
// want in place.
func sameShape(have, want apis.Kind) bool {
	switch have {
	case apis.KindCollection, apis.KindTuple:
		return want == apis.KindCollection || want == apis.KindTuple
	case apis.KindDictionary, apis.KindObject:
		return want == apis.KindDictionary || want == apis.KindObject
	}
	return have == want
}

// materialize returns fresh storage for the plain Go form of src.
func materialize(src apis.Value) (reflect.Value, bool) {
	var t reflect.Type
	switch src.Kind() {
	case apis.KindBoolean:
		t = reflect.TypeFor[bool]()
	case apis.KindInteger:
		t = reflect.TypeFor[int64]()
		if iv, ok := src.(apis.IntegerValue); ok && !iv.IsSigned() {
			t = reflect.TypeFor[uint64]()
		}
	case apis.KindFloat:
		t = reflect.TypeFor[float64]()
	case apis.KindString:
		t = reflect.TypeFor[string]()
	case apis.KindCollection, apis.KindTuple:
		v := reflect.New(anySliceType).Elem()
		v.Set(reflect.MakeSlice(anySliceType, 0, 0))
		return v, true
	case apis.KindDictionary, apis.KindObject:
		v := reflect.New(anyMapType).Elem()
		v.Set(reflect.MakeMap(anyMapType))
		return v, true
	default:
		return reflect.Value{}, false
	}
	return reflect.New(t).Elem(), true
}
