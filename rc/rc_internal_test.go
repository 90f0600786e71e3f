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

package rc

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counted struct {
	Object
}

func TestMetrics(t *testing.T) {
	created := testutil.ToFloat64(instancesCreated)
	destroyed := testutil.ToFloat64(instancesDestroyed)
	freed := testutil.ToFloat64(blocksFreed)
	misses := testutil.ToFloat64(weakLockMisses)

	c := CreateInstance[counted, *counted](nil, nil)
	weak := MakeWeak(c)
	c.Release()
	_, ok := weak.Lock()
	assert.False(t, ok)
	weak.Reset()

	assert.Equal(t, created+1, testutil.ToFloat64(instancesCreated))
	assert.Equal(t, destroyed+1, testutil.ToFloat64(instancesDestroyed))
	assert.Equal(t, freed+1, testutil.ToFloat64(blocksFreed))
	assert.Equal(t, misses+1, testutil.ToFloat64(weakLockMisses))
}

func TestCollectorsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	for _, c := range Collectors() {
		require.NoError(t, reg.Register(c))
	}
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestDestroyZeroesPayload(t *testing.T) {
	type payload struct {
		Object
		data []int
	}
	p := CreateInstance[payload, *payload](nil, func(p *payload) { p.data = []int{1, 2} })
	st := p.SharedState()
	p.Release()
	assert.Nil(t, p.data)
	assert.Same(t, st, p.state, "header stays bound after destruction")
}
