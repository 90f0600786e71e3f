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

// Package apis declares the contracts shared by the value layer packages.
package apis

import (
	"reflect"

	"dirpx.dev/rval/rc"
)

// Kind tags the variant a Value implements.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindOptional
	KindCollection
	KindDictionary
	KindObject
	KindTuple
	KindReference
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindBoolean:    "boolean",
	KindInteger:    "integer",
	KindFloat:      "float",
	KindString:     "string",
	KindOptional:   "optional",
	KindCollection: "collection",
	KindDictionary: "dictionary",
	KindObject:     "object",
	KindTuple:      "tuple",
	KindReference:  "reference",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsPrimitive reports whether k is a scalar kind. String counts as one.
func (k Kind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindString
}

// Value is a dynamically typed view over native data.
//
// Methods returning a Value hand out a new strong reference that the caller
// must Release. Value arguments are borrowed.
type Value interface {
	rc.RefCounted
	EventSource

	// Kind returns the variant implemented by the value.
	Kind() Kind
	// IsMutable reports whether writes are permitted. Fixed at construction.
	IsMutable() bool
	// IsReference reports whether the value aliases external storage.
	IsReference() bool
}

// BooleanValue wraps a bool.
type BooleanValue interface {
	Value
	Bool() bool
	SetBool(v bool) error
}

// IntegerValue wraps a signed or unsigned integer of any width.
type IntegerValue interface {
	Value
	IsSigned() bool
	Bits() int
	Int64() int64
	Uint64() uint64
	SetInt64(v int64) error
	SetUint64(v uint64) error
}

// FloatValue wraps a float32 or float64.
type FloatValue interface {
	Value
	Bits() int
	Float64() float64
	Float32() float32
	SetFloat64(v float64) error
	SetFloat32(v float32) error
}

// StringValue wraps a string or a text-parsable value.
type StringValue interface {
	Value
	String() string
	SetString(v string) error
}

// OptionalValue wraps a nullable slot.
type OptionalValue interface {
	Value
	HasValue() bool
	// Get returns the inner value, or nil when empty.
	Get() Value
	// Set assigns v to the inner value, creating it when needed.
	// A nil v resets the slot.
	Set(v Value, opts ...AssignOption) error
	Reset() error
}

// ReadonlyCollection is a sized sequence with positional access.
// Tuples implement only this interface.
type ReadonlyCollection interface {
	Value
	Len() int
	At(i int) Value
	SetAt(i int, v Value, opts ...AssignOption) error
}

// Collection is a growable sequence.
type Collection interface {
	ReadonlyCollection
	Clear() error
	Reserve(n int) error
	Append(v Value, opts ...AssignOption) error
}

// ReadonlyDictionary is a sized string-keyed container.
type ReadonlyDictionary interface {
	Value
	Len() int
	Key(i int) string
	// Get returns the value stored under key, or nil.
	Get(key string) Value
	Set(key string, v Value, opts ...AssignOption) error
	Contains(key string) bool
}

// Dictionary is an open string-keyed container.
type Dictionary interface {
	ReadonlyDictionary
	Clear() error
	// Erase is not implemented by the native map adapter.
	Erase(key string) error
}

// Object is a struct viewed through its field table.
// Keys are field names matched case-insensitively.
type Object interface {
	ReadonlyDictionary
	Class() *Class
	Field(name string) (Field, bool)
}

// ValueRef is a slot holding another Value.
type ValueRef interface {
	Value
	// Target returns the referenced value, or nil.
	Target() Value
	// Retarget makes the slot refer to v without copying it.
	Retarget(v Value) error
}

// NativeValue exposes the native data behind a Value.
type NativeValue interface {
	Value
	NativeType() reflect.Type
	// Interface returns a copy of the native data.
	Interface() any
	// Addr returns a pointer to the native data, or nil for immutable values.
	Addr() any
}

// TupleMarker marks struct types that are viewed as tuples instead of objects.
type TupleMarker interface {
	IsTuple()
}
