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

// Weak is a weak handle to a kernel-managed instance. It keeps the control
// block alive but not the instance. The zero value is an empty handle.
type Weak[T RefCounted] struct {
	st *SharedState
	v  T
}

// MakeWeak returns a weak handle to v. A nil v yields an empty handle.
func MakeWeak[T RefCounted](v T) Weak[T] {
	if any(v) == nil {
		return Weak[T]{}
	}
	st := v.SharedState()
	st.addWeak()
	return Weak[T]{st: st, v: v}
}

// Lock upgrades the handle to a strong reference. It returns false, without
// error, when the instance has already been destroyed or the handle is empty.
func (w *Weak[T]) Lock() (T, bool) {
	var zero T
	if w.st == nil {
		return zero, false
	}
	for {
		n := w.st.strong.Load()
		if n == 0 {
			weakLockMisses.Inc()
			return zero, false
		}
		if w.st.strong.CompareAndSwap(n, n+1) {
			return w.v, true
		}
	}
}

// Dead reports whether the handle is empty or its instance is destroyed.
func (w *Weak[T]) Dead() bool {
	return w.st == nil || w.st.strong.Load() == 0
}

// Empty reports whether the handle refers to nothing.
func (w *Weak[T]) Empty() bool {
	return w.st == nil
}

// Reset drops the weak reference and empties the handle.
func (w *Weak[T]) Reset() {
	if w.st == nil {
		return
	}
	st := w.st
	var zero T
	w.st, w.v = nil, zero
	st.releaseWeak()
}

// Clone returns another weak handle to the same instance.
func (w *Weak[T]) Clone() Weak[T] {
	if w.st == nil {
		return Weak[T]{}
	}
	w.st.addWeak()
	return Weak[T]{st: w.st, v: w.v}
}
