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
	"sync"
	"sync/atomic"
	"unsafe"
)

// Allocator provides storage for instance blocks. Size and alignment are
// those of t; returned memory must be zeroed, typed as t and aligned to
// t.Align(). Free receives the same type and pointer exactly once.
type Allocator interface {
	Allocate(t reflect.Type) unsafe.Pointer
	Free(t reflect.Type, p unsafe.Pointer)
}

var defaultAlloc atomic.Pointer[Allocator]

func init() {
	var a Allocator = HeapAllocator{}
	defaultAlloc.Store(&a)
}

// DefaultAllocator returns the allocator used when none is given.
func DefaultAllocator() Allocator {
	return *defaultAlloc.Load()
}

// SetDefaultAllocator replaces the default allocator. Nil restores the heap
// allocator. Blocks are always freed through the allocator that created them.
func SetDefaultAllocator(a Allocator) {
	if a == nil {
		a = HeapAllocator{}
	}
	defaultAlloc.Store(&a)
}

// HeapAllocator allocates blocks on the garbage-collected heap.
type HeapAllocator struct{}

// Allocate implements Allocator.
func (HeapAllocator) Allocate(t reflect.Type) unsafe.Pointer {
	return reflect.New(t).UnsafePointer()
}

// Free implements Allocator. The collector reclaims the block.
func (HeapAllocator) Free(reflect.Type, unsafe.Pointer) {}

// PoolAllocator recycles freed blocks per block type.
type PoolAllocator struct {
	pools sync.Map // map[reflect.Type]*sync.Pool
	live  atomic.Int64
}

// NewPoolAllocator returns an empty pool allocator.
func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{}
}

func (a *PoolAllocator) pool(t reflect.Type) *sync.Pool {
	if p, ok := a.pools.Load(t); ok {
		return p.(*sync.Pool)
	}
	p, _ := a.pools.LoadOrStore(t, &sync.Pool{
		New: func() any { return reflect.New(t).UnsafePointer() },
	})
	return p.(*sync.Pool)
}

// Allocate implements Allocator.
func (a *PoolAllocator) Allocate(t reflect.Type) unsafe.Pointer {
	a.live.Add(1)
	return a.pool(t).Get().(unsafe.Pointer)
}

// Free implements Allocator. The block is zeroed before it is pooled.
func (a *PoolAllocator) Free(t reflect.Type, p unsafe.Pointer) {
	reflect.NewAt(t, p).Elem().SetZero()
	a.live.Add(-1)
	a.pool(t).Put(p)
}

// Live returns the number of blocks handed out and not yet freed.
func (a *PoolAllocator) Live() int64 {
	return a.live.Load()
}
