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

package assign

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/diag"
)

func assignPrimitive(dst, src apis.Value, o apis.AssignOptions) error {
	if o.Coercion == apis.CoercionStrict && dst.Kind() != src.Kind() {
		return apis.Mismatch(dst.Kind(), src.Kind(), "strict coercion")
	}
	switch dst.Kind() {
	case apis.KindBoolean:
		return toBool(dst.(apis.BooleanValue), src, o)
	case apis.KindInteger:
		return toInteger(dst.(apis.IntegerValue), src, o)
	case apis.KindFloat:
		return toFloat(dst.(apis.FloatValue), src, o)
	case apis.KindString:
		return toString(dst.(apis.StringValue), src, o)
	}
	return apis.Mismatch(dst.Kind(), src.Kind(), "")
}

func toBool(dst apis.BooleanValue, src apis.Value, o apis.AssignOptions) error {
	switch src.Kind() {
	case apis.KindBoolean:
		return dst.SetBool(src.(apis.BooleanValue).Bool())
	case apis.KindString:
		s, err := parsable(dst, src, o)
		if err != nil {
			return err
		}
		if s == "" {
			return dst.SetBool(false)
		}
		switch s {
		case "true":
			return dst.SetBool(true)
		case "false":
			return dst.SetBool(false)
		}
		return parseError(s, apis.KindBoolean, strconv.ErrSyntax)
	}
	return apis.Mismatch(apis.KindBoolean, src.Kind(), "")
}

func toInteger(dst apis.IntegerValue, src apis.Value, o apis.AssignOptions) error {
	switch src.Kind() {
	case apis.KindInteger:
		iv := src.(apis.IntegerValue)
		if iv.IsSigned() {
			return dst.SetInt64(iv.Int64())
		}
		return dst.SetUint64(iv.Uint64())
	case apis.KindFloat:
		f := math.Floor(src.(apis.FloatValue).Float64())
		traceCoercion(apis.KindInteger, apis.KindFloat)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.Wrapf(apis.ErrOutOfRange, "%v is not an integer", f)
		}
		if dst.IsSigned() {
			if f < math.MinInt64 || f >= math.MaxInt64 {
				return errors.Wrapf(apis.ErrOutOfRange, "%v overflows int64", f)
			}
			return dst.SetInt64(int64(f))
		}
		if f < 0 || f >= math.MaxUint64 {
			return errors.Wrapf(apis.ErrOutOfRange, "%v overflows uint64", f)
		}
		return dst.SetUint64(uint64(f))
	case apis.KindString:
		s, err := parsable(dst, src, o)
		if err != nil {
			return err
		}
		if s == "" {
			return dst.SetInt64(0)
		}
		if dst.IsSigned() {
			n, err := strconv.ParseInt(s, 10, dst.Bits())
			if err != nil {
				return parseError(s, apis.KindInteger, err)
			}
			return dst.SetInt64(n)
		}
		n, err := strconv.ParseUint(s, 10, dst.Bits())
		if err != nil {
			return parseError(s, apis.KindInteger, err)
		}
		return dst.SetUint64(n)
	}
	return apis.Mismatch(apis.KindInteger, src.Kind(), "")
}

func toFloat(dst apis.FloatValue, src apis.Value, o apis.AssignOptions) error {
	switch src.Kind() {
	case apis.KindFloat:
		return dst.SetFloat64(src.(apis.FloatValue).Float64())
	case apis.KindInteger:
		traceCoercion(apis.KindFloat, apis.KindInteger)
		iv := src.(apis.IntegerValue)
		if iv.IsSigned() {
			return dst.SetFloat64(float64(iv.Int64()))
		}
		return dst.SetFloat64(float64(iv.Uint64()))
	case apis.KindString:
		s, err := parsable(dst, src, o)
		if err != nil {
			return err
		}
		if s == "" {
			return dst.SetFloat64(0)
		}
		f, err := strconv.ParseFloat(s, dst.Bits())
		if err != nil {
			return parseError(s, apis.KindFloat, err)
		}
		return dst.SetFloat64(f)
	}
	return apis.Mismatch(apis.KindFloat, src.Kind(), "")
}

func toString(dst apis.StringValue, src apis.Value, o apis.AssignOptions) error {
	if src.Kind() == apis.KindString {
		return dst.SetString(src.(apis.StringValue).String())
	}
	if o.Coercion != apis.CoercionAllow {
		return apis.Mismatch(apis.KindString, src.Kind(), "string coercion not allowed")
	}
	traceCoercion(apis.KindString, src.Kind())
	return dst.SetString(Format(src))
}

// Format renders a primitive in its canonical lexical form: "true" or
// "false", base-10 integers and the shortest float representation at the
// source width.
func Format(v apis.Value) string {
	switch v.Kind() {
	case apis.KindBoolean:
		return strconv.FormatBool(v.(apis.BooleanValue).Bool())
	case apis.KindInteger:
		iv := v.(apis.IntegerValue)
		if iv.IsSigned() {
			return strconv.FormatInt(iv.Int64(), 10)
		}
		return strconv.FormatUint(iv.Uint64(), 10)
	case apis.KindFloat:
		fv := v.(apis.FloatValue)
		return strconv.FormatFloat(fv.Float64(), 'g', -1, fv.Bits())
	case apis.KindString:
		return v.(apis.StringValue).String()
	}
	return ""
}

// parsable returns the trimmed source string when string coercion is on.
func parsable(dst, src apis.Value, o apis.AssignOptions) (string, error) {
	if o.Coercion != apis.CoercionAllow {
		return "", apis.Mismatch(dst.Kind(), apis.KindString, "string coercion not allowed")
	}
	traceCoercion(dst.Kind(), apis.KindString)
	return strings.TrimSpace(src.(apis.StringValue).String()), nil
}

func parseError(s string, k apis.Kind, err error) error {
	return errors.WithStack(&apis.ParseError{Input: s, Kind: k, Err: err})
}

func traceCoercion(to, from apis.Kind) {
	diag.Logger().Debug().Stringer("from", from).Stringer("to", to).Msg("coercing value")
}
