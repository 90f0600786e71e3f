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

// Binding describes how an adapter holds its native slot.
type Binding struct {
	// Mutable permits writes through the adapter.
	Mutable bool
	// Reference is set when the slot is external storage rather than a copy
	// owned by the adapter.
	Reference bool
}

// MutableRef binds a writable external slot.
var MutableRef = Binding{Mutable: true, Reference: true}

// ReadonlyRef binds a read-only external slot.
var ReadonlyRef = Binding{Reference: true}

// OwnedCopy binds a writable slot owned by the adapter.
var OwnedCopy = Binding{Mutable: true}
