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

package native

import (
	"encoding"
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/rc"
)

type boolValue struct{ node }

// NewBool wraps a bool slot.
func NewBool(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.BooleanValue {
	return rc.CreateInstance[boolValue, apis.BooleanValue](nil, func(v *boolValue) {
		v.setup(v, slot, b, res)
	})
}

func (v *boolValue) Kind() apis.Kind { return apis.KindBoolean }

func (v *boolValue) Bool() bool { return v.slot.Bool() }

func (v *boolValue) SetBool(x bool) error {
	if err := v.checkMutable(); err != nil {
		return err
	}
	v.slot.SetBool(x)
	v.NotifyChanged(nil)
	return nil
}

type intValue struct {
	node
	signed bool
}

// NewInteger wraps a signed or unsigned integer slot.
func NewInteger(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.IntegerValue {
	return rc.CreateInstance[intValue, apis.IntegerValue](nil, func(v *intValue) {
		v.setup(v, slot, b, res)
		v.signed = slot.CanInt()
	})
}

func (v *intValue) Kind() apis.Kind { return apis.KindInteger }

func (v *intValue) IsSigned() bool { return v.signed }

func (v *intValue) Bits() int { return v.slot.Type().Bits() }

func (v *intValue) Int64() int64 {
	if v.signed {
		return v.slot.Int()
	}
	return int64(v.slot.Uint())
}

func (v *intValue) Uint64() uint64 {
	if v.signed {
		return uint64(v.slot.Int())
	}
	return v.slot.Uint()
}

func (v *intValue) SetInt64(x int64) error {
	if err := v.checkMutable(); err != nil {
		return err
	}
	if v.signed {
		if v.slot.OverflowInt(x) {
			return errors.Wrapf(apis.ErrOutOfRange, "%d overflows %s", x, v.slot.Type())
		}
		v.slot.SetInt(x)
	} else {
		if x < 0 || v.slot.OverflowUint(uint64(x)) {
			return errors.Wrapf(apis.ErrOutOfRange, "%d overflows %s", x, v.slot.Type())
		}
		v.slot.SetUint(uint64(x))
	}
	v.NotifyChanged(nil)
	return nil
}

func (v *intValue) SetUint64(x uint64) error {
	if err := v.checkMutable(); err != nil {
		return err
	}
	if v.signed {
		if x > 1<<63-1 || v.slot.OverflowInt(int64(x)) {
			return errors.Wrapf(apis.ErrOutOfRange, "%d overflows %s", x, v.slot.Type())
		}
		v.slot.SetInt(int64(x))
	} else {
		if v.slot.OverflowUint(x) {
			return errors.Wrapf(apis.ErrOutOfRange, "%d overflows %s", x, v.slot.Type())
		}
		v.slot.SetUint(x)
	}
	v.NotifyChanged(nil)
	return nil
}

type floatValue struct{ node }

// NewFloat wraps a float32 or float64 slot.
func NewFloat(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.FloatValue {
	return rc.CreateInstance[floatValue, apis.FloatValue](nil, func(v *floatValue) {
		v.setup(v, slot, b, res)
	})
}

func (v *floatValue) Kind() apis.Kind { return apis.KindFloat }

func (v *floatValue) Bits() int { return v.slot.Type().Bits() }

func (v *floatValue) Float64() float64 { return v.slot.Float() }

func (v *floatValue) Float32() float32 { return float32(v.slot.Float()) }

func (v *floatValue) SetFloat64(x float64) error {
	if err := v.checkMutable(); err != nil {
		return err
	}
	v.slot.SetFloat(x)
	v.NotifyChanged(nil)
	return nil
}

func (v *floatValue) SetFloat32(x float32) error {
	return v.SetFloat64(float64(x))
}

type stringValue struct{ node }

// NewString wraps a string slot.
func NewString(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.StringValue {
	return rc.CreateInstance[stringValue, apis.StringValue](nil, func(v *stringValue) {
		v.setup(v, slot, b, res)
	})
}

func (v *stringValue) Kind() apis.Kind { return apis.KindString }

func (v *stringValue) String() string { return v.slot.String() }

func (v *stringValue) SetString(s string) error {
	if err := v.checkMutable(); err != nil {
		return err
	}
	v.slot.SetString(s)
	v.NotifyChanged(nil)
	return nil
}

// textValue exposes a type implementing encoding.TextMarshaler and
// encoding.TextUnmarshaler as a string.
type textValue struct{ node }

// NewText wraps a slot whose pointer implements both text interfaces.
func NewText(slot reflect.Value, b apis.Binding, res apis.Resolver) apis.StringValue {
	return rc.CreateInstance[textValue, apis.StringValue](nil, func(v *textValue) {
		v.setup(v, slot, b, res)
	})
}

func (v *textValue) Kind() apis.Kind { return apis.KindString }

func (v *textValue) String() string {
	m, ok := v.slot.Addr().Interface().(encoding.TextMarshaler)
	if !ok {
		diag.Fatalf("%s is not a text marshaler", v.slot.Type())
	}
	text, err := m.MarshalText()
	if err != nil {
		diag.Logger().Warn().Err(err).Stringer("type", v.slot.Type()).Msg("text marshal failed")
		return ""
	}
	return string(text)
}

func (v *textValue) SetString(s string) error {
	if err := v.checkMutable(); err != nil {
		return err
	}
	tmp := reflect.New(v.slot.Type())
	u, ok := tmp.Interface().(encoding.TextUnmarshaler)
	if !ok {
		diag.Fatalf("%s is not a text unmarshaler", v.slot.Type())
	}
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return errors.WithStack(&apis.ParseError{Input: s, Kind: apis.KindString, Err: err})
	}
	v.slot.Set(tmp.Elem())
	v.NotifyChanged(nil)
	return nil
}
