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
	"container/list"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rval/apis"
)

func TestVectorSetAtByReference(t *testing.T) {
	nums := []int{1, 2, 3}
	v := ref(&nums)
	defer v.Release()
	require.Equal(t, apis.KindCollection, v.Kind())
	c := v.(apis.Collection)

	n := cp(99)
	defer n.Release()
	require.NoError(t, c.SetAt(1, n))

	e := c.At(1)
	assert.Equal(t, int64(99), intOf(t, e))
	e.Release()
	assert.Equal(t, []int{1, 99, 3}, nums)
}

func TestVectorAppendClearReserve(t *testing.T) {
	var words []string
	c := ref(&words).(apis.Collection)
	defer c.Release()

	w := cp("a")
	defer w.Release()
	before := c.Len()
	require.NoError(t, c.Append(w))
	require.Equal(t, before+1, c.Len())
	e := c.At(before)
	assert.Equal(t, "a", strOf(t, e))
	e.Release()

	require.NoError(t, c.Reserve(16))
	assert.GreaterOrEqual(t, cap(words), 16)
	assert.Equal(t, []string{"a"}, words)

	require.NoError(t, c.Clear())
	assert.Empty(t, words)
}

func TestVectorIndexOutOfRange(t *testing.T) {
	nums := []int{1}
	c := ref(&nums).(apis.Collection)
	defer c.Release()

	assert.Panics(t, func() { c.At(3) })

	withoutChecks(t)
	assert.Nil(t, c.At(3))
	n := cp(1)
	defer n.Release()
	assert.ErrorIs(t, c.SetAt(-1, n), apis.ErrIndexOutOfRange)
}

func TestResizeWithLiveChildren(t *testing.T) {
	nums := []int{1, 2}
	c := ref(&nums).(apis.Collection)
	defer c.Release()

	child := c.At(0)
	n := cp(3)
	defer n.Release()

	assert.Panics(t, func() { _ = c.Append(n) })
	assert.Panics(t, func() { _ = c.Clear() })

	withoutChecks(t)
	assert.ErrorIs(t, c.Append(n), apis.ErrChildrenReferenced)
	assert.ErrorIs(t, c.Reserve(10), apis.ErrChildrenReferenced)
	assert.Equal(t, []int{1, 2}, nums)

	child.Release()
	require.NoError(t, c.Append(n))
	assert.Equal(t, []int{1, 2, 3}, nums)
}

func TestArrayIsUniformTuple(t *testing.T) {
	arr := [3]int{1, 2, 3}
	v := ref(&arr)
	defer v.Release()
	require.Equal(t, apis.KindTuple, v.Kind())
	c := v.(apis.ReadonlyCollection)
	_, growable := v.(apis.Collection)
	assert.False(t, growable)

	assert.Equal(t, 3, c.Len())
	n := cp(7)
	defer n.Release()
	require.NoError(t, c.SetAt(2, n))
	assert.Equal(t, [3]int{1, 2, 7}, arr)
}

func TestList(t *testing.T) {
	var l list.List
	for _, x := range []int{1, 2, 3, 4, 5} {
		l.PushBack(x)
	}
	v := ref(&l)
	defer v.Release()
	require.Equal(t, apis.KindCollection, v.Kind())
	c := v.(apis.Collection)

	require.Equal(t, 5, c.Len())
	for i := range 5 {
		e := c.At(i)
		assert.Equal(t, int64(i+1), intOf(t, e), "index %d", i)
		e.Release()
	}

	ten := cp(10)
	defer ten.Release()
	require.NoError(t, c.SetAt(3, ten))
	assert.Equal(t, 10, l.Back().Prev().Value, "element type is kept")

	e := c.At(0)
	require.NoError(t, e.(apis.IntegerValue).SetInt64(20))
	e.Release()
	assert.Equal(t, 20, l.Front().Value)

	s := cp("tail")
	defer s.Release()
	require.NoError(t, c.Append(s))
	assert.Equal(t, "tail", l.Back().Value)

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, l.Len())
}

func TestListAppendKeepsKind(t *testing.T) {
	var l list.List
	v := ref(&l)
	defer v.Release()
	c := v.(apis.Collection)

	srcs := []apis.Value{cp(7), cp(2.5), cp("s"), cp(true), cp([]int{1}), cp(map[string]int{"k": 1})}
	defer release(srcs...)
	for _, src := range srcs {
		require.NoError(t, c.Append(src))
	}
	var empty *int
	none := cp(empty)
	defer none.Release()
	require.NoError(t, c.Append(none))

	for i, src := range srcs {
		e := c.At(i)
		assert.Equal(t, src.Kind(), e.Kind(), "index %d", i)
		e.Release()
	}
	e := c.At(len(srcs))
	assert.Equal(t, apis.KindOptional, e.Kind(), "nil elements stay optional")
	e.Release()
}

func TestSet(t *testing.T) {
	tags := map[string]struct{}{"b": {}, "d": {}}
	v := ref(&tags)
	defer v.Release()
	require.Equal(t, apis.KindCollection, v.Kind())
	c := v.(apis.Collection)

	a := cp("a")
	defer a.Release()
	require.NoError(t, c.Append(a))
	require.Equal(t, 3, c.Len())

	err := c.Append(a)
	var dup *apis.DuplicateValueError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Value)
	assert.Equal(t, 3, c.Len(), "a duplicate append leaves the size unchanged")

	var got []string
	for i := range c.Len() {
		e := c.At(i)
		got = append(got, strOf(t, e))
		assert.False(t, e.IsMutable(), "set elements are read-only")
		e.Release()
	}
	assert.Equal(t, []string{"a", "b", "d"}, got)

	z := cp("z")
	defer z.Release()
	require.NoError(t, c.SetAt(0, z))
	assert.Equal(t, map[string]struct{}{"b": {}, "d": {}, "z": {}}, tags)

	d := cp("d")
	defer d.Release()
	require.ErrorAs(t, c.SetAt(0, d), &dup)

	require.NoError(t, c.Clear())
	assert.Empty(t, tags)
}
