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

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrImmutable is returned by writes on immutable values.
	ErrImmutable = errors.New("rval: attempt to modify non mutable value")
	// ErrNotImplemented is returned by operations an adapter does not support.
	ErrNotImplemented = errors.New("rval: operation not implemented")
	// ErrIndexOutOfRange is returned by positional writes past the end.
	ErrIndexOutOfRange = errors.New("rval: index out of range")
	// ErrOutOfRange is returned when a number does not fit the destination.
	ErrOutOfRange = errors.New("rval: value out of range for destination")
	// ErrChildrenReferenced is returned when a container is resized while
	// values vended from it are still alive.
	ErrChildrenReferenced = errors.New("rval: container modified while children are still referenced")
)

// TypeMismatchError reports an assignment between incompatible kinds.
type TypeMismatchError struct {
	Expected Kind
	Actual   Kind
	Reason   string
}

// Error implements error.
func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("rval: type mismatch: cannot assign %s to %s", e.Actual, e.Expected)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// FieldMissingError reports a write to a field the class does not declare.
type FieldMissingError struct {
	Type  string
	Field string
}

// Error implements error.
func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("rval: class %s does not contain field (%s)", e.Type, e.Field)
}

// DuplicateValueError reports an append of an element already in a set.
type DuplicateValueError struct {
	Value string
}

// Error implements error.
func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("rval: fail to append (unique) value %s", e.Value)
}

// ParseError reports a string that could not be converted to a scalar.
type ParseError struct {
	Input string
	Kind  Kind
	Err   error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("rval: cannot parse %q as %s: %v", e.Input, e.Kind, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Mismatch returns a TypeMismatchError carrying the caller's stack.
func Mismatch(expected, actual Kind, reason string) error {
	return errors.WithStack(&TypeMismatchError{Expected: expected, Actual: actual, Reason: reason})
}
