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
	"container/list"
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/rc"
	uref "dirpx.dev/rval/utils/reflect"
)

// vector wraps a slice slot.
type vector struct{ node }

// NewVector wraps a []T slot.
func NewVector(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.Collection {
	return rc.CreateInstance[vector, apis.Collection](nil, func(v *vector) {
		v.setup(v, slot, b, res)
	})
}

func (v *vector) Kind() apis.Kind { return apis.KindCollection }

func (v *vector) Len() int { return v.slot.Len() }

func (v *vector) At(i int) apis.Value {
	if !v.checkIndex(i, v.slot.Len()) {
		return nil
	}
	return v.adopt(v.wrap(v.slot.Index(i), v.childBinding()), indexKey(i), nil)
}

func (v *vector) SetAt(i int, src apis.Value, opts ...apis.AssignOption) error {
	if err := v.checkWriteIndex(i, v.slot.Len()); err != nil {
		return err
	}
	if err := v.assignInto(v.slot.Index(i), src, opts); err != nil {
		return err
	}
	v.NotifyChanged(nil)
	return nil
}

func (v *vector) Clear() error {
	if err := v.checkResize(); err != nil {
		return err
	}
	v.drop(v.slot)
	v.slot.Set(v.slot.Slice(0, 0))
	v.NotifyChanged(nil)
	return nil
}

func (v *vector) Reserve(n int) error {
	if err := v.checkResize(); err != nil {
		return err
	}
	if v.slot.Cap() >= n {
		return nil
	}
	grown := reflect.MakeSlice(v.slot.Type(), v.slot.Len(), n)
	reflect.Copy(grown, v.slot)
	v.slot.Set(grown)
	return nil
}

func (v *vector) Append(src apis.Value, opts ...apis.AssignOption) error {
	if err := v.checkResize(); err != nil {
		return err
	}
	elem := reflect.New(v.slot.Type().Elem()).Elem()
	if err := v.assignInto(elem, src, opts); err != nil {
		uref.ReleaseRefs(elem)
		return err
	}
	v.slot.Set(reflect.Append(v.slot, elem))
	v.NotifyChanged(nil)
	return nil
}

func (n *node) checkResize() error {
	if err := n.checkMutable(); err != nil {
		return err
	}
	return n.checkNoChildren()
}

// array wraps a [N]T slot as a uniform tuple.
type array struct{ node }

// NewArray wraps a [N]T slot.
func NewArray(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.ReadonlyCollection {
	return rc.CreateInstance[array, apis.ReadonlyCollection](nil, func(v *array) {
		v.setup(v, slot, b, res)
	})
}

func (a *array) Kind() apis.Kind { return apis.KindTuple }

func (a *array) Len() int { return a.slot.Len() }

func (a *array) At(i int) apis.Value {
	if !a.checkIndex(i, a.slot.Len()) {
		return nil
	}
	return a.adopt(a.wrap(a.slot.Index(i), a.childBinding()), indexKey(i), nil)
}

func (a *array) SetAt(i int, src apis.Value, opts ...apis.AssignOption) error {
	if err := a.checkWriteIndex(i, a.slot.Len()); err != nil {
		return err
	}
	if err := a.assignInto(a.slot.Index(i), src, opts); err != nil {
		return err
	}
	a.NotifyChanged(nil)
	return nil
}

// listValue wraps a container/list.List slot. Elements are stored as plain
// Go data; positional access walks from the nearest end. At vends the
// concrete content of an element, so only nil elements come back as
// optionals.
type listValue struct{ node }

// NewList wraps a list.List slot.
func NewList(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.Collection {
	return rc.CreateInstance[listValue, apis.Collection](nil, func(v *listValue) {
		v.setup(v, slot, b, res)
	})
}

func (l *listValue) Kind() apis.Kind { return apis.KindCollection }

func (l *listValue) list() *list.List {
	return l.slot.Addr().Interface().(*list.List)
}

func (l *listValue) Len() int { return l.list().Len() }

func (l *listValue) element(i int) *list.Element {
	ls := l.list()
	n := ls.Len()
	if i < n/2 {
		e := ls.Front()
		for ; i > 0; i-- {
			e = e.Next()
		}
		return e
	}
	e := ls.Back()
	for j := n - 1; j > i; j-- {
		e = e.Prev()
	}
	return e
}

func (l *listValue) At(i int) apis.Value {
	if !l.checkIndex(i, l.Len()) {
		return nil
	}
	e := l.element(i)
	slot := reflect.ValueOf(&e.Value).Elem()
	return l.vendCopy(slot, indexKey(i), l.childBinding(), func(v reflect.Value) {
		e.Value = v.Interface()
	})
}

func (l *listValue) SetAt(i int, src apis.Value, opts ...apis.AssignOption) error {
	if err := l.checkWriteIndex(i, l.Len()); err != nil {
		return err
	}
	e := l.element(i)
	if err := l.assignInto(reflect.ValueOf(&e.Value).Elem(), src, opts); err != nil {
		return err
	}
	l.NotifyChanged(nil)
	return nil
}

func (l *listValue) Clear() error {
	if err := l.checkResize(); err != nil {
		return err
	}
	l.drop(l.slot)
	l.list().Init()
	l.NotifyChanged(nil)
	return nil
}

// Reserve has nothing to preallocate for a linked list.
func (l *listValue) Reserve(int) error {
	return l.checkResize()
}

func (l *listValue) Append(src apis.Value, opts ...apis.AssignOption) error {
	if err := l.checkResize(); err != nil {
		return err
	}
	var x any
	if err := l.assignInto(reflect.ValueOf(&x).Elem(), src, opts); err != nil {
		uref.ReleaseRefs(reflect.ValueOf(&x).Elem())
		return err
	}
	l.list().PushBack(x)
	l.NotifyChanged(nil)
	return nil
}

// set wraps a map[K]struct{} slot. Index access follows the sorted key
// order and rebuilds it on every call.
type set struct{ node }

// NewSet wraps a map[K]struct{} slot.
func NewSet(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.Collection {
	return rc.CreateInstance[set, apis.Collection](nil, func(v *set) {
		v.setup(v, slot, b, res)
	})
}

func (s *set) Kind() apis.Kind { return apis.KindCollection }

func (s *set) Len() int { return s.slot.Len() }

func (s *set) At(i int) apis.Value {
	keys := uref.SortedKeys(s.slot)
	if !s.checkIndex(i, len(keys)) {
		return nil
	}
	return s.vendCopy(keys[i], indexKey(i), apis.ReadonlyRef, nil)
}

func (s *set) SetAt(i int, src apis.Value, opts ...apis.AssignOption) error {
	keys := uref.SortedKeys(s.slot)
	if err := s.checkWriteIndex(i, len(keys)); err != nil {
		return err
	}
	old := keys[i]
	elem := box(old)
	if err := s.assignInto(elem, src, opts); err != nil {
		return err
	}
	if elem.Equal(old) {
		return nil
	}
	if s.slot.MapIndex(elem).IsValid() {
		return errors.WithStack(&apis.DuplicateValueError{Value: uref.FormatKey(elem)})
	}
	s.slot.SetMapIndex(old, reflect.Value{})
	s.slot.SetMapIndex(elem, reflect.Zero(s.slot.Type().Elem()))
	s.NotifyChanged(nil)
	return nil
}

func (s *set) Clear() error {
	if err := s.checkResize(); err != nil {
		return err
	}
	if !s.slot.IsNil() {
		s.drop(s.slot)
		s.slot.Clear()
	}
	s.NotifyChanged(nil)
	return nil
}

func (s *set) Reserve(n int) error {
	if err := s.checkResize(); err != nil {
		return err
	}
	if s.slot.IsNil() {
		s.slot.Set(reflect.MakeMapWithSize(s.slot.Type(), n))
	}
	return nil
}

func (s *set) Append(src apis.Value, opts ...apis.AssignOption) error {
	if err := s.checkResize(); err != nil {
		return err
	}
	elem := reflect.New(s.slot.Type().Key()).Elem()
	if err := s.assignInto(elem, src, opts); err != nil {
		return err
	}
	if s.slot.MapIndex(elem).IsValid() {
		return errors.WithStack(&apis.DuplicateValueError{Value: uref.FormatKey(elem)})
	}
	if s.slot.IsNil() {
		s.slot.Set(reflect.MakeMap(s.slot.Type()))
	}
	s.slot.SetMapIndex(elem, reflect.Zero(s.slot.Type().Elem()))
	s.NotifyChanged(nil)
	return nil
}
