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
	"reflect"
	"strings"
)

// Class is the field table of one struct type. It is built once per type
// and shared by every Object viewing a value of that type.
type Class struct {
	// Name is used in diagnostics.
	Name string
	// Type is the struct type the table describes.
	Type reflect.Type
	// Fields lists the declared fields in key order.
	Fields []Field
	// Derived marks tables built from struct tags rather than registered.
	Derived bool
}

// Field describes one declared field.
type Field struct {
	// Name is the key of the field. Lookups ignore case.
	Name string
	// Type is the native type of the field.
	Type reflect.Type
	// Index is the reflect field index path, used when Accessor is nil.
	Index []int
	// Accessor returns the addressable field slot of obj.
	Accessor func(obj reflect.Value) reflect.Value
}

// Slot returns the field slot of the addressable struct value obj.
func (f Field) Slot(obj reflect.Value) reflect.Value {
	if f.Accessor != nil {
		return f.Accessor(obj)
	}
	return obj.FieldByIndex(f.Index)
}

// Len returns the number of declared fields.
func (c *Class) Len() int {
	return len(c.Fields)
}

// Lookup finds a field by case-insensitive name.
func (c *Class) Lookup(name string) (Field, bool) {
	for _, f := range c.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}
