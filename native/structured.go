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
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/rc"
	uref "dirpx.dev/rval/utils/reflect"
)

// dictionary wraps a map slot with string-kind keys. Index access follows
// the lexical key order.
type dictionary struct{ node }

// NewDictionary wraps a map[~string]V slot.
func NewDictionary(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.Dictionary {
	return rc.CreateInstance[dictionary, apis.Dictionary](nil, func(v *dictionary) {
		v.setup(v, slot, b, res)
	})
}

func (d *dictionary) Kind() apis.Kind { return apis.KindDictionary }

func (d *dictionary) Len() int { return d.slot.Len() }

func (d *dictionary) mapKey(key string) reflect.Value {
	return reflect.ValueOf(key).Convert(d.slot.Type().Key())
}

func (d *dictionary) Key(i int) string {
	keys := uref.SortedKeys(d.slot)
	if !d.checkIndex(i, len(keys)) {
		return ""
	}
	return keys[i].String()
}

func (d *dictionary) Contains(key string) bool {
	return d.slot.MapIndex(d.mapKey(key)).IsValid()
}

func (d *dictionary) Get(key string) apis.Value {
	k := d.mapKey(key)
	v := d.slot.MapIndex(k)
	if !v.IsValid() {
		return nil
	}
	return d.vendCopy(v, key, d.childBinding(), func(content reflect.Value) {
		d.slot.SetMapIndex(k, content)
	})
}

func (d *dictionary) Set(key string, src apis.Value, opts ...apis.AssignOption) error {
	if err := d.checkMutable(); err != nil {
		return err
	}
	k := d.mapKey(key)
	content := reflect.New(d.slot.Type().Elem()).Elem()
	if cur := d.slot.MapIndex(k); cur.IsValid() {
		content.Set(cur)
	}
	if err := d.assignInto(content, src, opts); err != nil {
		return err
	}
	if d.slot.IsNil() {
		d.slot.Set(reflect.MakeMap(d.slot.Type()))
	}
	d.slot.SetMapIndex(k, content)
	d.NotifyChanged(nil)
	return nil
}

func (d *dictionary) Clear() error {
	if err := d.checkResize(); err != nil {
		return err
	}
	if !d.slot.IsNil() {
		d.drop(d.slot)
		d.slot.Clear()
	}
	d.NotifyChanged(nil)
	return nil
}

// Erase is not supported.
func (d *dictionary) Erase(key string) error {
	diag.Failuref("erase of dictionary key %q is not implemented", key)
	return errors.Wrapf(apis.ErrNotImplemented, "erase %q", key)
}

// object wraps a struct slot through its class field table.
type object struct {
	node
	cls *apis.Class
}

// NewObject wraps a struct slot described by cls.
func NewObject(slot reflect.Value, b apis.Binding, res apis.Resolver, cls *apis.Class) apis.Object {
	if cls == nil {
		diag.Fatalf("nil class for %s", slot.Type())
	}
	return rc.CreateInstance[object, apis.Object](nil, func(v *object) {
		v.setup(v, slot, b, res)
		v.cls = cls
	})
}

func (o *object) Kind() apis.Kind { return apis.KindObject }

func (o *object) Class() *apis.Class { return o.cls }

func (o *object) Field(name string) (apis.Field, bool) { return o.cls.Lookup(name) }

func (o *object) Len() int { return o.cls.Len() }

func (o *object) Key(i int) string {
	if !o.checkIndex(i, o.cls.Len()) {
		return ""
	}
	return o.cls.Fields[i].Name
}

func (o *object) Contains(key string) bool {
	_, ok := o.cls.Lookup(key)
	return ok
}

func (o *object) Get(key string) apis.Value {
	f, ok := o.cls.Lookup(key)
	if !ok {
		return nil
	}
	return o.adopt(o.wrap(f.Slot(o.slot), o.childBinding()), f.Name, nil)
}

func (o *object) Set(key string, src apis.Value, opts ...apis.AssignOption) error {
	if err := o.checkMutable(); err != nil {
		return err
	}
	f, ok := o.cls.Lookup(key)
	if !ok {
		return errors.WithStack(&apis.FieldMissingError{Type: o.cls.Name, Field: key})
	}
	if err := o.assignInto(f.Slot(o.slot), src, opts); err != nil {
		return err
	}
	o.NotifyChanged(nil)
	return nil
}

// tuple wraps a struct implementing apis.TupleMarker; its exported fields
// are the positions.
type tuple struct {
	node
	fields []int
}

var tupleTables sync.Map // reflect.Type -> []int

func tupleFields(t reflect.Type) []int {
	if v, ok := tupleTables.Load(t); ok {
		return v.([]int)
	}
	var fields []int
	for i := range t.NumField() {
		if t.Field(i).IsExported() {
			fields = append(fields, i)
		}
	}
	v, _ := tupleTables.LoadOrStore(t, fields)
	return v.([]int)
}

// NewTuple wraps a tuple struct slot.
func NewTuple(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.ReadonlyCollection {
	return rc.CreateInstance[tuple, apis.ReadonlyCollection](nil, func(v *tuple) {
		v.setup(v, slot, b, res)
		v.fields = tupleFields(slot.Type())
	})
}

func (t *tuple) Kind() apis.Kind { return apis.KindTuple }

func (t *tuple) Len() int { return len(t.fields) }

func (t *tuple) At(i int) apis.Value {
	if !t.checkIndex(i, len(t.fields)) {
		return nil
	}
	return t.adopt(t.wrap(t.slot.Field(t.fields[i]), t.childBinding()), indexKey(i), nil)
}

func (t *tuple) SetAt(i int, src apis.Value, opts ...apis.AssignOption) error {
	if err := t.checkWriteIndex(i, len(t.fields)); err != nil {
		return err
	}
	if err := t.assignInto(t.slot.Field(t.fields[i]), src, opts); err != nil {
		return err
	}
	t.NotifyChanged(nil)
	return nil
}
