// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intervaldict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAILEngineInsertAndQuery(t *testing.T) {
	e := newAILEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 10))
	e.Insert("b", ivHalfOpen(5, 15))

	var hits []string
	for v := range e.Intersecting(ivHalfOpen(8, 12)) {
		hits = append(hits, v)
	}
	require.ElementsMatch(t, []string{"a", "b"}, hits)
}

func TestAILEngineDecomposesAtHighOverlap(t *testing.T) {
	e := newAILEngine[int, OrderedDomain[int]](WithMinOverlapsToPromote(2))
	for i := 0; i < 10; i++ {
		e.Insert(i, ivHalfOpen(0, 100))
	}
	var got int
	for range e.Intersecting(ivHalfOpen(0, 100)) {
		got++
	}
	require.Equal(t, 10, got)
}

func TestAILEngineEraseReclaimsTombstones(t *testing.T) {
	e := newAILEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 10))
	e.Erase("a", ivHalfOpen(3, 7), false)

	var ivs []Interval[OrderedDomain[int]]
	for _, iv := range e.ValueIntervals() {
		ivs = append(ivs, iv)
	}
	require.Len(t, ivs, 2)
	require.False(t, e.IsEmpty())
}

func TestAILEngineCustomTuning(t *testing.T) {
	e := newAILEngine[int, OrderedDomain[int]](WithMaxRuns(4), WithMinRunLength(2))
	for i := 0; i < 20; i++ {
		e.Insert(i, ivHalfOpen(i, i+1))
	}
	require.LessOrEqual(t, len(e.runs), 4)
}
