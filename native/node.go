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

// Package native implements the adapters that give native Go data a
// dynamic apis.Value view.
//
// Every adapter wraps one addressable reflect.Value slot. Reference
// adapters wrap caller storage; copy adapters wrap a slot they own. Values
// Go cannot address in place (map entries, set elements, list elements,
// interface contents) are vended as boxed copies that are committed back
// into their container whenever a change notification passes through them.
//
// Adapters double as nodes of the change notification graph. A node that
// vends a child creates its mutability guard in place, the child holds the
// guard strongly and the guard holds the parent strongly; change
// notifications climb from child to parent through it. Containers refuse
// to clear or grow while the guard is alive.
package native

import (
	"reflect"
	"strconv"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/assign"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/rc"
	uref "dirpx.dev/rval/utils/reflect"
)

// adapter is implemented by every value of this package.
type adapter interface {
	apis.Value
	base() *node
}

// node is the state shared by all adapters.
type node struct {
	rc.Object

	self    apis.Value
	slot    reflect.Value
	binding apis.Binding
	res     apis.Resolver
	// owned is set when the storage belongs to an owned copy, either this
	// node's or an ancestor's.
	owned bool

	busy   atomic.Bool
	subs   *linkedhashmap.Map // uint32 -> apis.ChangesHandler
	nextID uint32

	guardMem rc.Inplace[guard]
	guardRef rc.Weak[*guard]

	link *parentLink
}

// guard lets children reach their parent.
type guard struct {
	rc.Object
	parent apis.Value
}

// Destroy releases the parent.
func (g *guard) Destroy() {
	if p := g.parent; p != nil {
		g.parent = nil
		p.Release()
	}
}

func (g *guard) lockParent() apis.Value {
	p := g.parent
	if p == nil {
		return nil
	}
	p.AddRef()
	return p
}

// releaseGuard drops a child's reference to g. The parent is pinned until
// the guard is fully destroyed because the guard lives inside it.
func releaseGuard(g *guard) {
	parent := g.lockParent()
	g.Release()
	if parent != nil {
		parent.Release()
	}
}

// parentLink is held by a vended child.
type parentLink struct {
	guard  *guard
	key    string
	commit func()
}

func (n *node) setup(self apis.Value, slot reflect.Value, b apis.Binding, res apis.Resolver) {
	if !slot.CanAddr() {
		diag.Fatalf("adapter slot of type %s is not addressable", slot.Type())
	}
	n.self = self
	n.slot = slot
	n.binding = b
	n.res = res
	n.owned = !b.Reference
}

func (n *node) base() *node { return n }

// IsMutable implements apis.Value.
func (n *node) IsMutable() bool { return n.binding.Mutable }

// IsReference implements apis.Value.
func (n *node) IsReference() bool { return n.binding.Reference }

// NativeType implements apis.NativeValue.
func (n *node) NativeType() reflect.Type { return n.slot.Type() }

// Interface implements apis.NativeValue.
func (n *node) Interface() any { return n.slot.Interface() }

// Addr implements apis.NativeValue.
func (n *node) Addr() any {
	if !n.binding.Mutable {
		return nil
	}
	return n.slot.Addr().Interface()
}

// Destroy detaches the node from its parent and drops its subscribers.
// An owned slot gives up the kernel instances it holds.
func (n *node) Destroy() {
	if !n.binding.Reference {
		uref.ReleaseRefs(n.slot)
		n.slot.SetZero()
	}
	if l := n.link; l != nil {
		n.link = nil
		releaseGuard(l.guard)
	}
	n.guardRef.Reset()
	if n.subs != nil {
		n.subs.Clear()
	}
}

func (n *node) checkMutable() error {
	if n.binding.Mutable {
		return nil
	}
	diag.Failuref("attempt to modify non mutable %s value", n.self.Kind())
	return errors.WithStack(apis.ErrImmutable)
}

func (n *node) hasChildren() bool {
	return !n.guardRef.Dead()
}

func (n *node) checkNoChildren() error {
	if !n.hasChildren() {
		return nil
	}
	diag.Failuref("attempt to modify %s while there are still referenced children", n.self.Kind())
	return errors.WithStack(apis.ErrChildrenReferenced)
}

func (n *node) checkIndex(i, size int) bool {
	if i >= 0 && i < size {
		return true
	}
	diag.Failuref("index %d out of range [0, %d)", i, size)
	return false
}

func (n *node) checkWriteIndex(i, size int) error {
	if err := n.checkMutable(); err != nil {
		return err
	}
	if !n.checkIndex(i, size) {
		return errors.Wrapf(apis.ErrIndexOutOfRange, "%d not in [0, %d)", i, size)
	}
	return nil
}

// wrap returns an adapter over slot through the resolver.
func (n *node) wrap(slot reflect.Value, b apis.Binding) apis.Value {
	return wrapOrDie(n.res, slot, b)
}

func wrapOrDie(res apis.Resolver, slot reflect.Value, b apis.Binding) apis.Value {
	v := res.Wrap(slot, b)
	if v == nil {
		diag.Fatalf("no adapter for native type %s", slot.Type())
	}
	return v
}

// childBinding is the binding of children aliasing this node's storage.
func (n *node) childBinding() apis.Binding {
	return apis.Binding{Mutable: n.binding.Mutable, Reference: true}
}

// acquireGuard returns a strong reference to the guard, creating it when
// no child holds it.
func (n *node) acquireGuard() *guard {
	if g, ok := n.guardRef.Lock(); ok {
		return g
	}
	n.guardRef.Reset()
	n.self.AddRef()
	g := rc.CreateInstanceInplace[guard, *guard](&n.guardMem, func(g *guard) {
		g.parent = n.self
	})
	n.guardRef = rc.MakeWeak(g)
	diag.Logger().Trace().Stringer("kind", n.self.Kind()).Msg("mutability guard created")
	return g
}

// adopt links child to this node under key. commit, when set, stores the
// child's boxed content back into this node's storage.
func (n *node) adopt(child apis.Value, key string, commit func()) apis.Value {
	a, ok := child.(adapter)
	if !ok {
		return child
	}
	c := a.base()
	if c.link != nil {
		diag.Fatalf("%s value is already attached to a parent", child.Kind())
	}
	c.link = &parentLink{guard: n.acquireGuard(), key: key, commit: commit}
	c.owned = n.owned
	return child
}

// vendCopy vends a boxed copy of the non-addressable value v. store writes
// the box back into this node's storage.
func (n *node) vendCopy(v reflect.Value, key string, b apis.Binding, store func(reflect.Value)) apis.Value {
	if v.Kind() == reflect.Interface && v.Type().NumMethod() == 0 && !v.IsNil() {
		if val, ok := v.Interface().(apis.Value); ok {
			val.AddRef()
			return val
		}
		v = v.Elem()
	}
	content := box(v)
	var commit func()
	if b.Mutable && store != nil {
		commit = func() { store(content) }
	}
	return n.adopt(n.wrap(content, b), key, commit)
}

// assignInto assigns src into a detached view over slot.
func (n *node) assignInto(slot reflect.Value, src apis.Value, opts []apis.AssignOption) error {
	tmp := n.wrap(slot, apis.MutableRef)
	defer tmp.Release()
	return assign.Assign(tmp, src, opts...)
}

// drop releases the kernel instances held by v before owned storage
// discards it.
func (n *node) drop(v reflect.Value) {
	if n.owned {
		uref.ReleaseRefs(v)
	}
}

func box(v reflect.Value) reflect.Value {
	b := reflect.New(v.Type()).Elem()
	b.Set(v)
	return b
}

func indexKey(i int) string {
	return strconv.Itoa(i)
}
