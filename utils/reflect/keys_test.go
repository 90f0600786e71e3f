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

package reflect_test

import (
	"reflect"
	"testing"

	uref "dirpx.dev/rval/utils/reflect"
)

func keysOf(m any) []any {
	var out []any
	for _, k := range uref.SortedKeys(reflect.ValueOf(m)) {
		out = append(out, k.Interface())
	}
	return out
}

func TestSortedKeys(t *testing.T) {
	type pair struct{ A, B int }

	cases := []struct {
		name string
		m    any
		want []any
	}{
		{"strings", map[string]int{"b": 1, "a": 2, "c": 3}, []any{"a", "b", "c"}},
		{"ints", map[int]bool{10: true, -2: true, 3: true}, []any{-2, 3, 10}},
		{"uints", map[uint8]bool{200: true, 1: true}, []any{uint8(1), uint8(200)}},
		{"floats", map[float64]bool{1.5: true, -0.5: true}, []any{-0.5, 1.5}},
		{"bools", map[bool]int{true: 1, false: 0}, []any{false, true}},
		{"structs", map[pair]bool{{2, 1}: true, {1, 9}: true}, []any{pair{1, 9}, pair{2, 1}}},
		{"empty", map[string]int{}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keysOf(tc.m); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SortedKeys = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFormatKey(t *testing.T) {
	if got := uref.FormatKey(reflect.Value{}); got != "<invalid>" {
		t.Fatalf("FormatKey(invalid) = %q", got)
	}
	if got := uref.FormatKey(reflect.ValueOf(42)); got != "42" {
		t.Fatalf("FormatKey(42) = %q", got)
	}
	if got := uref.CompareKeys(reflect.ValueOf("a"), reflect.ValueOf("a")); got != 0 {
		t.Fatalf("CompareKeys(a, a) = %d", got)
	}
}
