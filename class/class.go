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

// Package class builds the field tables (apis.Class) that Object adapters
// use to view structs.
//
// Tables come from two sources. Describe builds one explicitly, field by
// field, from typed accessors:
//
//	cls, err := class.Describe[Server]("Server").
//		Field("host", func(s *Server) any { return &s.Host }).
//		Field("port", func(s *Server) any { return &s.Port }).
//		Build()
//
// FromStruct derives one from the exported fields of a struct type and a
// struct tag (`rval:"name"`, `rval:"-"` to skip). Either way a table is
// built once per type and registered; it is never rebuilt per value.
package class

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"dirpx.dev/rval/apis"
)

var (
	// ErrNotStruct is returned for types that cannot carry fields.
	ErrNotStruct = errors.New("rval(class): type is not a struct")
	// ErrDuplicateField is returned when two fields share a name,
	// compared case-insensitively.
	ErrDuplicateField = errors.New("rval(class): duplicate field name")
	// ErrBadAccessor is returned when an accessor does not return a non-nil
	// pointer into the value it was given.
	ErrBadAccessor = errors.New("rval(class): accessor must return a non-nil pointer")
)

// Builder accumulates the fields of T.
type Builder[T any] struct {
	cls  *apis.Class
	seen map[string]bool
	err  error
}

// Describe starts a class for T. An empty name uses the type name.
func Describe[T any](name string) *Builder[T] {
	t := reflect.TypeFor[T]()
	if name == "" {
		name = t.String()
	}
	b := &Builder[T]{
		cls:  &apis.Class{Name: name, Type: t},
		seen: make(map[string]bool),
	}
	if t.Kind() != reflect.Struct {
		b.err = errors.Wrapf(ErrNotStruct, "%s", t)
	}
	return b
}

// Field declares a field named name whose slot is returned by get as a
// pointer. get is called once here on a probe value to learn the field type.
func (b *Builder[T]) Field(name string, get func(*T) any) *Builder[T] {
	if err := b.claim(name); err != nil {
		b.err = multierr.Append(b.err, err)
		return b
	}
	probe := reflect.ValueOf(get(new(T)))
	if probe.Kind() != reflect.Pointer || probe.IsNil() {
		b.err = multierr.Append(b.err, errors.Wrapf(ErrBadAccessor, "field %q of %s", name, b.cls.Name))
		return b
	}
	b.cls.Fields = append(b.cls.Fields, apis.Field{
		Name: name,
		Type: probe.Type().Elem(),
		Accessor: func(obj reflect.Value) reflect.Value {
			return reflect.ValueOf(get(obj.Addr().Interface().(*T))).Elem()
		},
	})
	return b
}

func (b *Builder[T]) claim(name string) error {
	if name == "" {
		return errors.Errorf("rval(class): empty field name in %s", b.cls.Name)
	}
	key := strings.ToLower(name)
	if b.seen[key] {
		return errors.Wrapf(ErrDuplicateField, "%q in %s", name, b.cls.Name)
	}
	b.seen[key] = true
	return nil
}

// Build returns the class, or every error collected while declaring fields.
func (b *Builder[T]) Build() (*apis.Class, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cls, nil
}

// MustBuild is Build that panics on error, for package-level registration.
func (b *Builder[T]) MustBuild() *apis.Class {
	cls, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cls
}
