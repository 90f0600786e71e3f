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

// Package tuple provides fixed heterogeneous aggregates that rval exposes
// as positional tuples instead of objects.
package tuple

// T2 is a pair.
type T2[A, B any] struct {
	V0 A
	V1 B
}

// T3 is a triple.
type T3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

// T4 is a quadruple.
type T4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

// IsTuple implements apis.TupleMarker.
func (T2[A, B]) IsTuple() {}

// IsTuple implements apis.TupleMarker.
func (T3[A, B, C]) IsTuple() {}

// IsTuple implements apis.TupleMarker.
func (T4[A, B, C, D]) IsTuple() {}

// Of2 returns a pair.
func Of2[A, B any](a A, b B) T2[A, B] {
	return T2[A, B]{V0: a, V1: b}
}

// Of3 returns a triple.
func Of3[A, B, C any](a A, b B, c C) T3[A, B, C] {
	return T3[A, B, C]{V0: a, V1: b, V2: c}
}

// Of4 returns a quadruple.
func Of4[A, B, C, D any](a A, b B, c C, d D) T4[A, B, C, D] {
	return T4[A, B, C, D]{V0: a, V1: b, V2: c, V3: d}
}
