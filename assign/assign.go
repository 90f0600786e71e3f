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

// Package assign implements the assignment engine: converting one
// apis.Value into another across kinds.
//
// Rules apply in a fixed priority order:
//
//  1. a Reference destination is retargeted to the source;
//  2. a Reference source is replaced by its target;
//  3. an Optional source is replaced by its inner value;
//  4. an Optional destination takes the source through Set;
//  5. primitives convert by destination kind under the coercion policy;
//  6. a Collection destination is refilled from any collection source;
//  7. fixed-size collections are assigned positionally;
//  8. an Object destination merges same-named keys field by field;
//  9. a Dictionary destination is refilled key by key;
//  10. anything else is a type mismatch.
//
// An empty source (nil, an empty Optional or an empty Reference) clears
// the destination: Optionals are reset, Strings emptied, Collections and
// Dictionaries cleared; other kinds are left untouched.
package assign

import (
	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/diag"
)

// Assign copies src into dst. Options propagate into nested assignments.
func Assign(dst, src apis.Value, opts ...apis.AssignOption) error {
	return assign(dst, src, apis.NewAssignOptions(opts...))
}

func assign(dst, src apis.Value, o apis.AssignOptions) error {
	if dst == nil {
		diag.Fatalf("assignment into a nil value")
	}
	if dst == src {
		return nil
	}
	if dst.Kind() == apis.KindReference {
		return dst.(apis.ValueRef).Retarget(src)
	}
	if src == nil {
		return clearValue(dst)
	}

	switch src.Kind() {
	case apis.KindReference:
		t := src.(apis.ValueRef).Target()
		if t == nil {
			return clearValue(dst)
		}
		defer t.Release()
		return assign(dst, t, o)
	case apis.KindOptional:
		opt := src.(apis.OptionalValue)
		if !opt.HasValue() {
			return clearValue(dst)
		}
		inner := opt.Get()
		defer inner.Release()
		return assign(dst, inner, o)
	}

	if dst.Kind() == apis.KindOptional {
		return dst.(apis.OptionalValue).Set(src, apis.UseOptions(o))
	}
	if dst.Kind().IsPrimitive() && src.Kind().IsPrimitive() {
		return assignPrimitive(dst, src, o)
	}

	sc, srcSeq := src.(apis.ReadonlyCollection)
	if srcSeq {
		if dc, ok := dst.(apis.Collection); ok {
			return refill(dc, sc, o)
		}
		if dc, ok := dst.(apis.ReadonlyCollection); ok {
			return positional(dc, sc, o)
		}
	}

	sd, srcMap := src.(apis.ReadonlyDictionary)
	if srcMap {
		if do, ok := dst.(apis.Object); ok {
			return merge(do, sd, o)
		}
		if dd, ok := dst.(apis.ReadonlyDictionary); ok {
			return rekey(dd, sd, o)
		}
	}
	return apis.Mismatch(dst.Kind(), src.Kind(), "")
}

func clearValue(dst apis.Value) error {
	switch dst.Kind() {
	case apis.KindOptional:
		return dst.(apis.OptionalValue).Reset()
	case apis.KindString:
		return dst.(apis.StringValue).SetString("")
	case apis.KindCollection:
		if c, ok := dst.(apis.Collection); ok {
			return c.Clear()
		}
	case apis.KindDictionary:
		if d, ok := dst.(apis.Dictionary); ok {
			return d.Clear()
		}
	}
	return nil
}

// refill replaces (or, when merging, extends) dst with the elements of src.
func refill(dst apis.Collection, src apis.ReadonlyCollection, o apis.AssignOptions) error {
	if !o.MergeCollection {
		if err := dst.Clear(); err != nil {
			return err
		}
	}
	n := src.Len()
	if err := dst.Reserve(dst.Len() + n); err != nil {
		return err
	}
	for i := range n {
		if err := withElement(src, i, func(e apis.Value) error {
			return dst.Append(e, apis.UseOptions(o))
		}); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}

// positional assigns the first min(len(dst), len(src)) elements.
func positional(dst, src apis.ReadonlyCollection, o apis.AssignOptions) error {
	n := min(dst.Len(), src.Len())
	for i := range n {
		if err := withElement(src, i, func(e apis.Value) error {
			return dst.SetAt(i, e, apis.UseOptions(o))
		}); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}

// merge sets every field of dst that src has a key for.
func merge(dst apis.Object, src apis.ReadonlyDictionary, o apis.AssignOptions) error {
	for i := range dst.Len() {
		name := dst.Key(i)
		if !src.Contains(name) {
			continue
		}
		v := src.Get(name)
		err := dst.Set(name, v, apis.UseOptions(o))
		release(v)
		if err != nil {
			return errors.Wrapf(err, "field %s", name)
		}
	}
	return nil
}

// rekey replaces (or, when merging, extends) dst with the entries of src.
func rekey(dst apis.ReadonlyDictionary, src apis.ReadonlyDictionary, o apis.AssignOptions) error {
	if d, ok := dst.(apis.Dictionary); ok && !o.MergeCollection {
		if err := d.Clear(); err != nil {
			return err
		}
	}
	keys := make([]string, src.Len())
	for i := range keys {
		keys[i] = src.Key(i)
	}
	for _, k := range keys {
		v := src.Get(k)
		err := dst.Set(k, v, apis.UseOptions(o))
		release(v)
		if err != nil {
			return errors.Wrapf(err, "key %q", k)
		}
	}
	return nil
}

func withElement(src apis.ReadonlyCollection, i int, fn func(apis.Value) error) error {
	e := src.At(i)
	defer release(e)
	return fn(e)
}

func release(v apis.Value) {
	if v != nil {
		v.Release()
	}
}
