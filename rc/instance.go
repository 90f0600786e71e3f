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

package rc

import (
	"reflect"
	"unsafe"

	"dirpx.dev/rval/diag"
)

// block is the single allocation holding a control block followed by the
// payload. Go's layout rules pad the payload to its own alignment, so the
// block alignment is the stricter of the two.
type block[T any] struct {
	state SharedState
	value T
}

// Inplace is caller-owned storage for one instance at a time.
// Its zero value is ready to use.
type Inplace[T any] struct {
	b block[T]
}

// InUse reports whether the storage still holds strong or weak references.
func (s *Inplace[T]) InUse() bool {
	return s.b.state.marker == blockMarker && s.b.state.weak.Load() != 0
}

// CreateInstance allocates a T through alloc (the default allocator when nil),
// runs init on it and returns it as I with a strong count of one.
// T must embed Object and *T must implement I; both are checked and fatal.
func CreateInstance[T any, I any](alloc Allocator, init func(*T)) I {
	if alloc == nil {
		alloc = DefaultAllocator()
	}
	layout := reflect.TypeFor[block[T]]()
	p := alloc.Allocate(layout)
	if p == nil {
		diag.Fatalf("allocation of %s failed", layout)
	}
	if uintptr(p)%uintptr(layout.Align()) != 0 {
		diag.Fatalf("allocator returned %d-byte block misaligned for %s (align %d)",
			layout.Size(), layout, layout.Align())
	}
	b := (*block[T])(p)
	return construct[T, I](b, alloc, layout, p, init)
}

// CreateInstanceInplace constructs a T inside storage. No allocator is
// involved and releasing the instance never frees the storage; once the
// instance and all its weak references are gone the storage can be reused.
func CreateInstanceInplace[T any, I any](storage *Inplace[T], init func(*T)) I {
	if storage == nil {
		diag.Fatalf("nil in-place storage")
	}
	if storage.InUse() {
		diag.Fatalf("in-place storage for %s is still referenced", reflect.TypeFor[T]())
	}
	return construct[T, I](&storage.b, nil, nil, nil, init)
}

func construct[T any, I any](b *block[T], alloc Allocator, layout reflect.Type, base unsafe.Pointer, init func(*T)) I {
	st := &b.state
	st.marker = blockMarker
	st.strong.Store(1)
	st.weak.Store(1)
	st.alloc = alloc
	st.layout = layout
	st.base = base

	payload := &b.value
	reflect.ValueOf(payload).Elem().SetZero()
	obj, ok := any(payload).(RefCounted)
	if !ok {
		diag.Fatalf("%s does not embed rc.Object", reflect.TypeFor[T]())
	}
	obj.bind(st)

	st.acquire = func(iface reflect.Type) (any, bool) {
		if reflect.TypeOf(payload).Implements(iface) {
			return payload, true
		}
		return nil, false
	}
	st.destroy = func() {
		if d, ok := any(payload).(Destroyer); ok {
			d.Destroy()
		}
		reflect.ValueOf(payload).Elem().SetZero()
		obj.bind(st)
		diag.Logger().Trace().Stringer("type", reflect.TypeFor[T]()).Msg("instance destroyed")
	}

	if init != nil {
		init(payload)
	}
	instancesCreated.Inc()
	diag.Logger().Trace().Stringer("type", reflect.TypeFor[T]()).Msg("instance created")

	out, ok := any(payload).(I)
	if !ok {
		diag.Fatalf("%s cannot be cast to %s", reflect.TypeFor[*T](), reflect.TypeFor[I]())
	}
	return out
}

// Cast queries v for the capability I through its control block.
// No reference is added; the result is borrowed from v.
func Cast[I any](v RefCounted) (I, bool) {
	var zero I
	if v == nil {
		return zero, false
	}
	iface := reflect.TypeFor[I]()
	if iface.Kind() != reflect.Interface {
		diag.Fatalf("capability %s is not an interface type", iface)
	}
	p, ok := v.SharedState().acquire(iface)
	if !ok {
		return zero, false
	}
	return p.(I), true
}

// MustCast is Cast with a fatal check on failure.
func MustCast[I any](v RefCounted) I {
	out, ok := Cast[I](v)
	if !ok {
		diag.Fatalf("%T does not provide %s", v, reflect.TypeFor[I]())
	}
	return out
}
