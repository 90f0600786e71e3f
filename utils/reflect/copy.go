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

package reflect

import (
	"container/list"
	"reflect"

	"dirpx.dev/rval/rc"
)

var (
	listType       = reflect.TypeFor[list.List]()
	refCountedType = reflect.TypeFor[rc.RefCounted]()
)

// DeepCopy returns a copy of v that shares no mutable storage with it.
// Kernel-managed instances reached through pointers or interfaces are
// shared instead and gain a strong reference. Unexported fields are copied
// shallowly. v must not contain cycles.
func DeepCopy(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	t := v.Type()
	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return out
		}
		if t.Implements(refCountedType) {
			v.Interface().(rc.RefCounted).AddRef()
			out.Set(v)
			return out
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(DeepCopy(v.Elem()))
		out.Set(p)

	case reflect.Interface:
		if v.IsNil() {
			return out
		}
		if r, ok := v.Interface().(rc.RefCounted); ok {
			r.AddRef()
			out.Set(v)
			return out
		}
		out.Set(DeepCopy(v.Elem()))

	case reflect.Slice:
		if v.IsNil() {
			return out
		}
		s := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			s.Index(i).Set(DeepCopy(v.Index(i)))
		}
		out.Set(s)

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(DeepCopy(v.Index(i)))
		}

	case reflect.Map:
		if v.IsNil() {
			return out
		}
		m := reflect.MakeMapWithSize(t, v.Len())
		it := v.MapRange()
		for it.Next() {
			m.SetMapIndex(DeepCopy(it.Key()), DeepCopy(it.Value()))
		}
		out.Set(m)

	case reflect.Struct:
		if t == listType {
			if !v.CanAddr() {
				tmp := reflect.New(t).Elem()
				tmp.Set(v)
				v = tmp
			}
			src := v.Addr().Interface().(*list.List)
			dst := out.Addr().Interface().(*list.List)
			dst.Init()
			for e := src.Front(); e != nil; e = e.Next() {
				dst.PushBack(copyAny(e.Value))
			}
			return out
		}
		out.Set(v)
		for i := 0; i < t.NumField(); i++ {
			if f := out.Field(i); f.CanSet() {
				f.Set(DeepCopy(v.Field(i)))
			}
		}

	default:
		out.Set(v)
	}
	return out
}

func copyAny(x any) any {
	if x == nil {
		return nil
	}
	return DeepCopy(reflect.ValueOf(x)).Interface()
}

// ReleaseRefs drops one strong reference from every kernel-managed
// instance reachable from v the way DeepCopy reaches them. It undoes the
// references a DeepCopy took when the copy is discarded.
func ReleaseRefs(v reflect.Value) {
	if !v.IsValid() {
		return
	}
	t := v.Type()
	switch t.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if t.Implements(refCountedType) {
			v.Interface().(rc.RefCounted).Release()
			return
		}
		ReleaseRefs(v.Elem())

	case reflect.Interface:
		if v.IsNil() {
			return
		}
		if r, ok := v.Interface().(rc.RefCounted); ok {
			r.Release()
			return
		}
		ReleaseRefs(v.Elem())

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			ReleaseRefs(v.Index(i))
		}

	case reflect.Map:
		it := v.MapRange()
		for it.Next() {
			ReleaseRefs(it.Key())
			ReleaseRefs(it.Value())
		}

	case reflect.Struct:
		if t == listType {
			if !v.CanAddr() {
				tmp := reflect.New(t).Elem()
				tmp.Set(v)
				v = tmp
			}
			for e := v.Addr().Interface().(*list.List).Front(); e != nil; e = e.Next() {
				if e.Value != nil {
					ReleaseRefs(reflect.ValueOf(e.Value))
				}
			}
			return
		}
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				ReleaseRefs(v.Field(i))
			}
		}
	}
}
