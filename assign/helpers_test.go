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

package assign_test

import (
	"testing"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/assign"
	"dirpx.dev/rval/builder"
	"dirpx.dev/rval/config"
	"dirpx.dev/rval/native"
)

var res = func() apis.Resolver {
	cfg := config.DefaultConfig()
	b := builder.New()
	return b.BuildResolver(cfg, b.BuildRegistry(cfg, nil), nil)
}()

func ref(ptr any) apis.Value { return native.Ref(res, ptr, apis.MutableRef) }
func cp(v any) apis.Value    { return native.Copy(res, v) }

// assignTo assigns a copy of src into the value ptr points to.
func assignTo(t *testing.T, ptr any, src any, opts ...apis.AssignOption) error {
	t.Helper()
	dst := ref(ptr)
	defer dst.Release()
	s := cp(src)
	defer s.Release()
	return assign.Assign(dst, s, opts...)
}

type point struct {
	X, Y int
}

type shape struct {
	Name   string
	Origin point
	Tags   []string
	Attrs  map[string]any
	Scale  *float64
}
