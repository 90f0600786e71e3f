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

// Package rc is the ownership kernel: intrusive strong/weak reference
// counting over a single control block shared by an instance and its weak
// observers.
//
// A kernel-managed type embeds Object as its header:
//
//	type node struct {
//		rc.Object
//		...
//	}
//
//	n := rc.CreateInstance[node, *node](nil, func(n *node) { ... })
//	defer n.Release()
//
// CreateInstance allocates the control block and the payload in one block,
// binds the header and returns the payload upcast to the requested
// interface. The destructor runs exactly once, when the strong count drops
// from one to zero; the block goes back to its allocator exactly once, when
// the weak count drops from one to zero after destruction. Weak handles are
// upgraded with Weak.Lock, which only succeeds while the instance is alive.
package rc

import (
	"reflect"
	"sync/atomic"
	"unsafe"

	"dirpx.dev/rval/diag"
)

// blockMarker tags control blocks created by this package.
const blockMarker uint64 = 0x52565f424c4f434b

// SharedState is the control block of one instance.
type SharedState struct {
	marker  uint64
	strong  atomic.Uint32
	weak    atomic.Uint32
	alloc   Allocator
	layout  reflect.Type
	base    unsafe.Pointer
	destroy func()
	acquire func(iface reflect.Type) (any, bool)
}

// StrongCount returns the current number of strong holders.
func (s *SharedState) StrongCount() uint32 {
	return s.strong.Load()
}

// WeakCount returns the current weak count. A live instance holds one weak
// count itself.
func (s *SharedState) WeakCount() uint32 {
	return s.weak.Load()
}

// Alive reports whether the instance has not been destroyed yet.
func (s *SharedState) Alive() bool {
	return s.strong.Load() > 0
}

func (s *SharedState) valid() bool {
	return s != nil && s.marker == blockMarker
}

func (s *SharedState) addWeak() {
	if s.weak.Add(1) == 1 {
		diag.Fatalf("weak reference taken on a released control block")
	}
}

func (s *SharedState) releaseWeak() {
	n := s.weak.Add(^uint32(0))
	switch {
	case n == ^uint32(0):
		diag.Fatalf("weak count underflow")
	case n == 0:
		if s.strong.Load() != 0 {
			diag.Fatalf("control block released while instance is alive")
		}
		blocksFreed.Inc()
		if s.alloc != nil {
			alloc, layout, base := s.alloc, s.layout, s.base
			s.alloc, s.base = nil, nil
			alloc.Free(layout, base)
		}
	}
}

// RefCounted is implemented by every type embedding Object.
type RefCounted interface {
	AddRef()
	Release()
	SharedState() *SharedState
	bind(st *SharedState)
}

// Destroyer is implemented by payloads that need cleanup when their last
// strong reference is released.
type Destroyer interface {
	Destroy()
}

// Object is the header embedded by kernel-managed types.
type Object struct {
	state *SharedState
}

func (o *Object) bind(st *SharedState) {
	o.state = st
}

func (o *Object) checked() *SharedState {
	if !o.state.valid() {
		diag.Fatalf("instance was not created through the ownership kernel")
	}
	return o.state
}

// SharedState returns the control block of the instance.
func (o *Object) SharedState() *SharedState {
	return o.checked()
}

// AddRef adds a strong reference.
func (o *Object) AddRef() {
	if o.checked().strong.Add(1) == 1 {
		diag.Fatalf("strong reference added to a destroyed instance")
	}
}

// Release drops a strong reference, destroying the instance on the last one.
func (o *Object) Release() {
	st := o.checked()
	n := st.strong.Add(^uint32(0))
	switch {
	case n == ^uint32(0):
		diag.Fatalf("release of a destroyed instance")
	case n == 0:
		st.destroy()
		instancesDestroyed.Inc()
		st.releaseWeak()
	}
}
