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
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/rc"
)

// Subscribe implements apis.EventSource.
func (n *node) Subscribe(h apis.ChangesHandler) apis.Subscription {
	if h == nil {
		diag.Fatalf("nil changes handler")
	}
	if n.enter("subscribe") {
		defer n.busy.Store(false)
	}
	if n.subs == nil {
		n.subs = linkedhashmap.New()
	}
	n.nextID++
	n.subs.Put(n.nextID, h)
	return &subscription{id: n.nextID, node: rc.MakeWeak(n.self)}
}

func (n *node) unsubscribe(id uint32) bool {
	if n.enter("unsubscribe") {
		defer n.busy.Store(false)
	}
	if n.subs == nil {
		return false
	}
	if _, ok := n.subs.Get(id); !ok {
		return false
	}
	n.subs.Remove(id)
	return true
}

func (n *node) subscribed(id uint32) bool {
	if n.subs == nil {
		return false
	}
	_, ok := n.subs.Get(id)
	return ok
}

// NotifyChanged implements apis.EventSource.
func (n *node) NotifyChanged(source apis.Value) {
	l := n.link
	if l != nil && l.commit != nil {
		l.commit()
	}
	n.serve(n.keyOf(source))
	if l == nil {
		return
	}
	parent := l.guard.lockParent()
	if parent == nil {
		return
	}
	defer parent.Release()
	parent.NotifyChanged(n.self)
}

// keyOf returns the key under which source hangs off this node.
func (n *node) keyOf(source apis.Value) string {
	a, ok := source.(adapter)
	if !ok || a.base() == n {
		return ""
	}
	if l := a.base().link; l != nil {
		return l.key
	}
	return ""
}

func (n *node) serve(key string) {
	if n.subs == nil || n.subs.Empty() {
		return
	}
	if n.enter("notify") {
		defer n.busy.Store(false)
	}
	for _, h := range n.subs.Values() {
		h.(apis.ChangesHandler).OnValueChanged(n.self, key)
	}
}

// enter claims the exchange flag. A failed claim is a reentrant or
// concurrent use of the node.
func (n *node) enter(op string) bool {
	if n.busy.CompareAndSwap(false, true) {
		return true
	}
	diag.Failuref("reentrant %s on %s value", op, n.self.Kind())
	return false
}

type subscription struct {
	id   uint32
	node rc.Weak[apis.Value]
}

func (s *subscription) ID() uint32 { return s.id }

func (s *subscription) Active() bool {
	v, ok := s.node.Lock()
	if !ok {
		return false
	}
	defer v.Release()
	a, ok := v.(adapter)
	return ok && a.base().subscribed(s.id)
}

func (s *subscription) Unsubscribe() {
	if s.node.Empty() {
		return
	}
	if v, ok := s.node.Lock(); ok {
		if a, ok := v.(adapter); ok {
			a.base().unsubscribe(s.id)
		}
		v.Release()
	}
	s.node.Reset()
}
