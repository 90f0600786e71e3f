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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rval/apis"
	"dirpx.dev/rval/rc"
)

type link struct {
	Ref  apis.Value
	Refs []apis.Value
}

func strong(v apis.Value) uint32 {
	return v.SharedState().StrongCount()
}

func TestOwnedCopyReleasesNestedValues(t *testing.T) {
	target := cp(7)
	defer target.Release()

	c := cp(link{Ref: target, Refs: []apis.Value{target}})
	assert.Equal(t, uint32(3), strong(target), "the copy holds its own references")

	c.Release()
	assert.Equal(t, uint32(1), strong(target))
}

func TestOwnedCopyDestroysLastHolder(t *testing.T) {
	target := cp("tmp")
	weak := rc.MakeWeak(target)
	defer weak.Reset()

	c := cp(link{Ref: target})
	target.Release()
	assert.False(t, weak.Dead(), "the copy keeps the target alive")

	c.Release()
	assert.True(t, weak.Dead())
}

func TestOwnedCopyRetargetThroughField(t *testing.T) {
	first, second := cp(1), cp(2)
	defer release(first, second)

	c := cp(link{Ref: first})
	field := c.(apis.Object).Get("ref").(apis.ValueRef)
	require.NoError(t, field.Retarget(second))
	field.Release()
	assert.Equal(t, uint32(1), strong(first))
	assert.Equal(t, uint32(2), strong(second))

	c.Release()
	assert.Equal(t, uint32(1), strong(second))
}

func TestOwnedVectorClearReleasesElements(t *testing.T) {
	target := cp(true)
	defer target.Release()

	c := cp([]apis.Value{target, target})
	require.Equal(t, uint32(3), strong(target))
	require.NoError(t, c.(apis.Collection).Clear())
	assert.Equal(t, uint32(1), strong(target))

	require.NoError(t, c.(apis.Collection).Append(target))
	assert.Equal(t, uint32(2), strong(target))
	c.Release()
	assert.Equal(t, uint32(1), strong(target))
}

func TestReferenceStorageKeepsItsValues(t *testing.T) {
	target := cp(3)
	defer target.Release()

	l := link{Ref: target}
	v := ref(&l)
	v.Release()
	assert.Equal(t, uint32(1), strong(target), "caller storage is never released")
	assert.Same(t, target, l.Ref)
}
