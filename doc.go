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

// Package rval provides a dynamic, reference-counted view over native Go
// data.
//
// A Value wraps a Go value either by reference (MakeValueRef,
// MakeReadonlyRef: writes land in the caller's storage) or as an owned
// deep copy (MakeValueCopy). Values are tagged by Kind: Boolean, Integer,
// Float, String, Optional, Collection, Dictionary, Object, Tuple and
// Reference. Consumers read, mutate, convert and observe them without
// knowing the concrete type:
//
//	cfg := Server{Host: "localhost", Port: 80}
//	v := rval.MakeValueRef(&cfg)
//	defer v.Release()
//
//	obj := rval.MustAs[apis.Object](v)
//	port := obj.Get("port")
//	defer port.Release()
//	_ = rval.MustAs[apis.IntegerValue](port).SetInt64(8080) // cfg.Port == 8080
//
// # Ownership
//
// Every Value is created through the ownership kernel in package rc and
// carries a strong and a weak count. Methods returning a Value hand out a
// new strong reference that the caller releases; arguments are borrowed.
// Releasing the last strong reference destroys the value.
//
// # Assignment
//
// Assign converts one Value into another following the rules of package
// assign. Object destinations are merged field by field; collections and
// dictionaries are replaced unless apis.WithMergeCollection is given.
// Primitive conversion follows the configured apis.TypeCoercion.
//
// # Change notifications
//
// Subscribe attaches a handler to a Value. A mutation anywhere below a
// value climbs the chain of vended children: a handler on an Object sees
// the name of the field whose subtree changed.
//
// # Global state
//
// Like a service locator kept deliberately small, the package holds an
// atomically published snapshot of four components:
//
//   - Config: coercion policy, debug checks, field tag, log level.
//   - Registry: field tables per struct type, explicit (RegisterClass)
//     or derived from struct tags on first use.
//   - Resolver: picks the adapter for a native type by running a chain of
//     strategies (text marshalers, registered classes, reflect kinds).
//   - Builder: constructs Registry and Resolver for a Config.
//
// Reads are lock-free. Writers (SetConfig, SetRegistry, SetResolver,
// SetBuilder, SetAll) take a short build lock, rebuild the layers that
// are not pinned and publish a new snapshot. SetRegistry and SetResolver
// pin what they set until UnpinRegistry or UnpinResolver.
//
// # Concurrency
//
// The kernel counts are atomic and the global state is safe for
// concurrent use. A single value tree must not be mutated from several
// goroutines at once; with debug checks on, reentrant use of one node is
// reported as a violation.
package rval
