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

package strategy

import (
	"container/list"
	"reflect"
	"sync"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/class"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/native"
)

// NewReflectStrategy creates an apis.Strategy that picks an adapter from the
// slot's reflect kind. Struct classes are derived from tag and stored in reg
// on first use.
func NewReflectStrategy(reg apis.Registry, tag string) apis.Strategy {
	return &reflectStrategy{reg: reg, derive: class.Deriver(tag)}
}

// reflectStrategy is the universal fallback.
type reflectStrategy struct {
	reg    apis.Registry
	derive func(reflect.Type) (*apis.Class, error)
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// shape is the adapter family of a native type.
type shape uint8

const (
	shapeNone shape = iota
	shapeBool
	shapeInt
	shapeFloat
	shapeString
	shapeOptional
	shapeDynamic
	shapeVector
	shapeArray
	shapeList
	shapeSet
	shapeDictionary
	shapeTuple
	shapeObject
	shapeRef
)

var (
	valueType  = reflect.TypeFor[apis.Value]()
	listType   = reflect.TypeFor[list.List]()
	markerType = reflect.TypeFor[apis.TupleMarker]()
)

// shapeCache memoizes shapeOf by type.
var shapeCache sync.Map // key: reflect.Type, val: shape

func shapeOf(t reflect.Type) shape {
	if v, ok := shapeCache.Load(t); ok {
		return v.(shape)
	}
	s := classify(t)
	shapeCache.Store(t, s)
	return s
}

func classify(t reflect.Type) shape {
	switch t {
	case valueType:
		return shapeRef
	case listType:
		return shapeList
	}
	switch t.Kind() {
	case reflect.Bool:
		return shapeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return shapeInt
	case reflect.Float32, reflect.Float64:
		return shapeFloat
	case reflect.String:
		return shapeString
	case reflect.Pointer:
		return shapeOptional
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return shapeDynamic
		}
	case reflect.Slice:
		return shapeVector
	case reflect.Array:
		return shapeArray
	case reflect.Map:
		if e := t.Elem(); e.Kind() == reflect.Struct && e.NumField() == 0 {
			return shapeSet
		}
		if t.Key().Kind() == reflect.String {
			return shapeDictionary
		}
	case reflect.Struct:
		if reflect.PointerTo(t).Implements(markerType) {
			return shapeTuple
		}
		return shapeObject
	}
	return shapeNone
}

// TryWrap wraps slot according to its shape.
func (s *reflectStrategy) TryWrap(slot reflect.Value, b apis.Binding, res apis.Resolver) (apis.Value, bool) {
	switch shapeOf(slot.Type()) {
	case shapeBool:
		return native.NewBool(slot, b, res), true
	case shapeInt:
		return native.NewInteger(slot, b, res), true
	case shapeFloat:
		return native.NewFloat(slot, b, res), true
	case shapeString:
		return native.NewString(slot, b, res), true
	case shapeOptional:
		return native.NewOptional(slot, b, res), true
	case shapeDynamic:
		return native.NewDynamic(slot, b, res), true
	case shapeVector:
		return native.NewVector(slot, b, res), true
	case shapeArray:
		return native.NewArray(slot, b, res), true
	case shapeList:
		return native.NewList(slot, b, res), true
	case shapeSet:
		return native.NewSet(slot, b, res), true
	case shapeDictionary:
		return native.NewDictionary(slot, b, res), true
	case shapeTuple:
		return native.NewTuple(slot, b, res), true
	case shapeRef:
		return native.NewValueRef(slot, b, res), true
	case shapeObject:
		return s.object(slot, b, res)
	}
	return nil, false
}

func (s *reflectStrategy) object(slot reflect.Value, b apis.Binding, res apis.Resolver) (apis.Value, bool) {
	var (
		cls *apis.Class
		err error
	)
	if s.reg != nil {
		cls, err = s.reg.LoadOrBuild(slot.Type(), s.derive)
	} else {
		cls, err = s.derive(slot.Type())
	}
	if err != nil {
		diag.Logger().Warn().Err(err).Stringer("type", slot.Type()).Msg("cannot derive class")
		return nil, false
	}
	return native.NewObject(slot, b, res, cls), true
}
