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

package rval_test

import (
	"fmt"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/rval"
	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/builder"
	"dirpx.dev/rval/class"
	"dirpx.dev/rval/config"
)

// restore puts the global state back the way the test found it.
func restore(t *testing.T) {
	t.Helper()
	cfg, reg, res, bld := rval.Config(), rval.Registry(), rval.Resolver(), rval.Builder()
	preg, pres := rval.IsRegistryPinned(), rval.IsResolverPinned()
	t.Cleanup(func() {
		require.NoError(t, rval.SetAll(&cfg, reg, res, bld))
		if !preg {
			rval.UnpinRegistry()
		}
		if !pres {
			rval.UnpinResolver()
		}
	})
}

func TestVectorAppendAndRead(t *testing.T) {
	data := []int{1, 2, 3}
	v := rval.MakeValueRef(&data)
	defer v.Release()

	col, ok := rval.As[apis.Collection](v)
	require.True(t, ok)
	require.Equal(t, 3, col.Len())

	four := rval.MakeValueCopy(4)
	defer four.Release()
	require.NoError(t, col.Append(four))
	assert.Equal(t, []int{1, 2, 3, 4}, data)

	second := col.At(1)
	defer second.Release()
	assert.Equal(t, int64(2), rval.MustAs[apis.IntegerValue](second).Int64())
}

func TestChangesBubbleToRoot(t *testing.T) {
	type leaf struct{ N int }
	type mid struct{ Leaf leaf }
	type top struct{ Mid mid }

	var data top
	root := rval.MakeValueRef(&data)
	defer root.Release()

	var seen []string
	sub := rval.Subscribe(root, func(_ apis.Value, key string) { seen = append(seen, key) })
	defer rval.Unsubscribe(sub)

	m := root.(apis.Object).Get("mid")
	defer m.Release()
	l := m.(apis.Object).Get("leaf")
	defer l.Release()
	n := l.(apis.Object).Get("n")
	defer n.Release()

	require.NoError(t, n.(apis.IntegerValue).SetInt64(7))
	assert.Equal(t, 7, data.Mid.Leaf.N)
	assert.Equal(t, []string{"Mid"}, seen)

	rval.Unsubscribe(sub)
	require.NoError(t, n.(apis.IntegerValue).SetInt64(8))
	assert.Len(t, seen, 1)
	assert.False(t, sub.Active())
	rval.Unsubscribe(nil)
}

func TestAssignUsesGlobalCoercion(t *testing.T) {
	restore(t)

	var n int
	dst := rval.MakeValueRef(&n)
	defer dst.Release()
	src := rval.MakeValueCopy(" 42 ")
	defer src.Release()

	var mismatch *apis.TypeMismatchError
	assert.ErrorAs(t, rval.Assign(dst, src), &mismatch)

	require.NoError(t, rval.SetConfig(config.NewConfig(config.WithCoercion(apis.CoercionAllow))))
	require.NoError(t, rval.Assign(dst, src))
	assert.Equal(t, 42, n)

	err := rval.Assign(dst, src, apis.WithCoercion(apis.CoercionStrict))
	assert.ErrorAs(t, err, &mismatch, "explicit options override the global policy")
}

func TestSetConfigValidates(t *testing.T) {
	restore(t)

	before := rval.Config()
	err := rval.SetConfig(apis.Config{LogLevel: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field_tag")
	assert.Contains(t, err.Error(), "loud")
	assert.Equal(t, before, rval.Config(), "a rejected config is not published")
}

func TestSetConfigRebuildsUnpinnedLayers(t *testing.T) {
	restore(t)

	reg, res := rval.Registry(), rval.Resolver()
	require.NoError(t, rval.SetConfig(config.NewConfig(config.WithFieldTag("json"))))
	assert.NotSame(t, reg, rval.Registry())
	assert.NotSame(t, res, rval.Resolver())
	assert.Equal(t, "json", rval.Config().FieldTag)

	rval.PinRegistry()
	rval.PinResolver()
	reg, res = rval.Registry(), rval.Resolver()
	require.NoError(t, rval.SetConfig(config.DefaultConfig()))
	assert.Same(t, reg, rval.Registry())
	assert.Same(t, res, rval.Resolver())

	rval.UnpinRegistry()
	assert.False(t, rval.IsRegistryPinned())
	assert.True(t, rval.IsResolverPinned())
	require.NoError(t, rval.SetConfig(config.DefaultConfig()))
	assert.NotSame(t, reg, rval.Registry())
	assert.Same(t, res, rval.Resolver())
}

func TestSetAllPinsExplicitLayers(t *testing.T) {
	restore(t)

	b := builder.New()
	cfg := config.NewConfig(config.WithMaxUnwrap(2))
	reg := b.BuildRegistry(cfg, nil)
	require.NoError(t, rval.SetAll(&cfg, reg, nil, b))

	assert.Same(t, reg, rval.Registry())
	assert.True(t, rval.IsRegistryPinned())
	assert.False(t, rval.IsResolverPinned())
	assert.Equal(t, 2, rval.Config().MaxUnwrap)

	bad := apis.Config{}
	assert.Error(t, rval.SetAll(&bad, nil, nil, nil))
	assert.Same(t, reg, rval.Registry())

	rval.SetRegistry(nil)
	rval.SetResolver(nil)
	rval.SetBuilder(nil)
	assert.Same(t, reg, rval.Registry(), "nil setters are ignored")
}

type account struct {
	ID    int
	Owner string
	notes string
}

func TestRegisterClass(t *testing.T) {
	restore(t)

	cls := class.Describe[account]("account").
		Field("owner", func(a *account) any { return &a.Owner }).
		Field("notes", func(a *account) any { return &a.notes }).
		MustBuild()
	require.NoError(t, rval.RegisterClass(cls))
	assert.ErrorIs(t, rval.RegisterClass(nil), rval.ErrNilClass)

	a := account{ID: 1, Owner: "ana"}
	v := rval.MakeValueRef(&a)
	defer v.Release()
	obj := rval.MustAs[apis.Object](v)
	assert.Same(t, cls, obj.Class())
	assert.False(t, obj.Contains("ID"))

	notes := obj.Get("notes")
	defer notes.Release()
	require.NoError(t, rval.MustAs[apis.StringValue](notes).SetString("vip"))
	assert.Equal(t, "vip", a.notes)

	require.NoError(t, rval.SetConfig(config.NewConfig(config.WithFieldTag("json"))))
	got, ok := rval.Registry().Lookup(cls.Type)
	require.True(t, ok, "explicit classes survive a rebuild")
	assert.Same(t, cls, got)
}

func TestAsAndMustAs(t *testing.T) {
	v := rval.MakeValueCopy("text")
	defer v.Release()

	_, ok := rval.As[apis.StringValue](v)
	assert.True(t, ok)
	_, ok = rval.As[apis.Collection](v)
	assert.False(t, ok)
	_, ok = rval.As[apis.Collection](nil)
	assert.False(t, ok)
	assert.Panics(t, func() { rval.MustAs[apis.Dictionary](v) })
}

func TestReadonlyRefRejectsWrites(t *testing.T) {
	restore(t)
	require.NoError(t, rval.SetConfig(config.NewConfig(config.WithDebugChecks(false))))

	s := "fixed"
	v := rval.MakeReadonlyRef(&s)
	defer v.Release()
	assert.False(t, v.IsMutable())
	assert.ErrorIs(t, rval.MustAs[apis.StringValue](v).SetString("x"), apis.ErrImmutable)
	assert.Equal(t, "fixed", s)
}

func TestToNative(t *testing.T) {
	type item struct {
		SKU   string
		Qty   uint8
		Price float32
		Tags  []string
		Extra map[string]int
		Next  *item
	}
	v := rval.MakeValueCopy(item{
		SKU:   "a-1",
		Qty:   3,
		Price: 0.5,
		Tags:  []string{"x"},
		Extra: map[string]int{"k": -1},
	})
	defer v.Release()

	got, err := rval.ToNative(v)
	require.NoError(t, err)
	autogold.Expect(map[string]any{
		"Extra": map[string]any{"k": int64(-1)},
		"Next":  nil,
		"Price": float64(0.5),
		"Qty":   uint64(3),
		"SKU":   "a-1",
		"Tags":  []any{"x"},
	}).Equal(t, got)

	got, err = rval.ToNative(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestConcurrentReadsDuringReconfiguration(t *testing.T) {
	restore(t)

	type row struct {
		A int `json:"a" rval:"a"`
	}
	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				v := rval.MakeValueCopy(row{A: j})
				obj, ok := rval.As[apis.Object](v)
				if !ok || obj.Len() != 1 || obj.Key(0) != "a" {
					v.Release()
					return fmt.Errorf("unexpected view of row at iteration %d", j)
				}
				v.Release()
			}
			return nil
		})
	}
	g.Go(func() error {
		for j := 0; j < 50; j++ {
			tag := "rval"
			if j%2 == 1 {
				tag = "json"
			}
			if err := rval.SetConfig(config.NewConfig(config.WithFieldTag(tag))); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())
}
