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

import "reflect"

// Registry maps struct types to their field tables.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Register associates the struct type behind t with cls.
	// Registering the same class again is a no-op; a different class for an
	// already registered type is an error.
	Register(t reflect.Type, cls *Class) error
	// Lookup returns the class registered for t.
	Lookup(t reflect.Type) (cls *Class, ok bool)
	// LoadOrBuild returns the class registered for t, or builds, registers
	// and returns one. build runs at most once per type.
	LoadOrBuild(t reflect.Type, build func(reflect.Type) (*Class, error)) (*Class, error)
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered classes.
	Count() int
	// Reset clears all registered classes.
	Reset()
}

// Entry is a single (type, class) association in a Registry snapshot.
type Entry struct {
	Type  reflect.Type
	Class *Class
}
