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

package native_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/builder"
	"dirpx.dev/rval/config"
	"dirpx.dev/rval/diag"
	"dirpx.dev/rval/native"
)

var res = newResolver()

func newResolver() apis.Resolver {
	cfg := config.DefaultConfig()
	b := builder.New()
	return b.BuildResolver(cfg, b.BuildRegistry(cfg, nil), nil)
}

func ref(ptr any) apis.Value      { return native.Ref(res, ptr, apis.MutableRef) }
func readonly(ptr any) apis.Value { return native.Ref(res, ptr, apis.ReadonlyRef) }
func cp(v any) apis.Value         { return native.Copy(res, v) }

func release(vs ...apis.Value) {
	for _, v := range vs {
		if v != nil {
			v.Release()
		}
	}
}

// withoutChecks disables debug checks so misuse is reported as errors.
func withoutChecks(t *testing.T) {
	t.Helper()
	prev := diag.SetEnabled(false)
	t.Cleanup(func() { diag.SetEnabled(prev) })
}

func intOf(t *testing.T, v apis.Value) int64 {
	t.Helper()
	require.NotNil(t, v)
	iv, ok := v.(apis.IntegerValue)
	require.True(t, ok, "%s is not an integer", v.Kind())
	return iv.Int64()
}

func strOf(t *testing.T, v apis.Value) string {
	t.Helper()
	require.NotNil(t, v)
	sv, ok := v.(apis.StringValue)
	require.True(t, ok, "%s is not a string", v.Kind())
	return sv.String()
}
