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

package class

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"dirpx.dev/rval/apis"
)

// FromStruct derives the class of struct type t from its exported fields.
// The tag names a field (`rval:"name,omitempty"` uses "name") or skips it
// (`rval:"-"`). Channels, functions and complex numbers have no view and
// are skipped. Untagged embedded structs contribute their promoted fields;
// fields promoted through embedded pointers are skipped.
func FromStruct(t reflect.Type, tag string) (*apis.Class, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrNotStruct, "%v", t)
	}
	cls := &apis.Class{Name: t.String(), Type: t, Derived: true}
	seen := make(map[string]bool)
	var errs error

	for _, f := range reflect.VisibleFields(t) {
		name, ok := fieldName(f, tag)
		if !ok || throughPointer(t, f.Index) {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			errs = multierr.Append(errs, errors.Wrapf(ErrDuplicateField, "%q in %s", name, cls.Name))
			continue
		}
		seen[key] = true
		cls.Fields = append(cls.Fields, apis.Field{
			Name:  name,
			Type:  f.Type,
			Index: f.Index,
		})
	}
	if errs != nil {
		return nil, errs
	}
	return cls, nil
}

// Deriver returns a build function for apis.Registry.LoadOrBuild.
func Deriver(tag string) func(reflect.Type) (*apis.Class, error) {
	return func(t reflect.Type) (*apis.Class, error) {
		return FromStruct(t, tag)
	}
}

func fieldName(f reflect.StructField, tag string) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	switch f.Type.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return "", false
	}
	raw, tagged := f.Tag.Lookup(tag)
	name, _, _ := strings.Cut(raw, ",")
	if name == "-" {
		return "", false
	}
	if f.Anonymous && !tagged && f.Type.Kind() == reflect.Struct {
		// Promoted fields are visited on their own.
		return "", false
	}
	if f.Anonymous && f.Type.Kind() == reflect.Pointer && !tagged {
		return "", false
	}
	if name == "" {
		name = f.Name
	}
	return name, true
}

func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			return true
		}
		t = f.Type
	}
	return false
}
