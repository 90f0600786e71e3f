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
	"strings"

	"github.com/pkg/errors"
)

// TypeCoercion controls cross-kind conversion during assignment.
type TypeCoercion uint8

const (
	// CoercionDefault converts between integers and floats but never
	// to or from strings.
	CoercionDefault TypeCoercion = iota
	// CoercionAllow also parses strings into scalars and formats scalars
	// into strings.
	CoercionAllow
	// CoercionStrict requires matching kinds.
	CoercionStrict
)

// String returns the coercion name.
func (c TypeCoercion) String() string {
	switch c {
	case CoercionDefault:
		return "default"
	case CoercionAllow:
		return "allow"
	case CoercionStrict:
		return "strict"
	}
	return "unknown"
}

// ParseTypeCoercion parses a coercion name. Empty input yields CoercionDefault.
func ParseTypeCoercion(s string) (TypeCoercion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return CoercionDefault, nil
	case "allow":
		return CoercionAllow, nil
	case "strict":
		return CoercionStrict, nil
	}
	return CoercionDefault, errors.Errorf("rval: unknown type coercion %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c TypeCoercion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TypeCoercion) UnmarshalText(b []byte) error {
	v, err := ParseTypeCoercion(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// AssignOptions is the resolved option set of one assignment.
type AssignOptions struct {
	// MergeCollection appends to collections and dictionaries instead of
	// replacing their content.
	MergeCollection bool
	// Coercion is the conversion policy for primitives.
	Coercion TypeCoercion
}

// AssignOption mutates AssignOptions.
type AssignOption func(*AssignOptions)

// NewAssignOptions applies opts over the zero option set.
func NewAssignOptions(opts ...AssignOption) AssignOptions {
	var o AssignOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithMergeCollection sets MergeCollection.
func WithMergeCollection() AssignOption {
	return func(o *AssignOptions) {
		o.MergeCollection = true
	}
}

// WithCoercion sets the coercion policy.
func WithCoercion(c TypeCoercion) AssignOption {
	return func(o *AssignOptions) {
		o.Coercion = c
	}
}

// UseOptions replaces the whole option set. Adapters use it to forward the
// options of an assignment into nested ones.
func UseOptions(v AssignOptions) AssignOption {
	return func(o *AssignOptions) {
		*o = v
	}
}
