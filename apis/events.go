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

package apis

// ChangesHandler receives change notifications. target is the node the
// subscription was made on; childKey names the immediate child that
// changed, or is empty when target itself changed.
type ChangesHandler interface {
	OnValueChanged(target Value, childKey string)
}

// ChangesHandlerFunc adapts a function to ChangesHandler.
type ChangesHandlerFunc func(target Value, childKey string)

// OnValueChanged calls f.
func (f ChangesHandlerFunc) OnValueChanged(target Value, childKey string) {
	f(target, childKey)
}

// EventSource is the change notification side of a Value.
type EventSource interface {
	// Subscribe appends h to the subscriber list.
	Subscribe(h ChangesHandler) Subscription
	// NotifyChanged serves local subscribers and propagates to the parent.
	// source is the changed child, or nil (or the node itself) when the node
	// changed.
	NotifyChanged(source Value)
}

// Subscription identifies one handler on one node. It holds only a weak
// reference to the node.
type Subscription interface {
	ID() uint32
	// Active reports whether the subscription is registered on a live node.
	Active() bool
	// Unsubscribe removes the handler. Calling it again, or after the node
	// is gone, does nothing.
	Unsubscribe()
}
