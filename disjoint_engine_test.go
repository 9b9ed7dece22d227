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

func TestDisjointEngineInsertMergesAdjacentSameValue(t *testing.T) {
	e := newDisjointEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 5))
	e.Insert("a", ivHalfOpen(5, 10))

	var ivs []Interval[OrderedDomain[int]]
	for _, iv := range e.ValueIntervals() {
		ivs = append(ivs, iv)
	}
	require.Len(t, ivs, 1, "adjacent buckets carrying the same value set should merge into one bucket")
}

func TestDisjointEngineInsertSplitsOnPartialOverlap(t *testing.T) {
	e := newDisjointEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 10))
	e.Insert("b", ivHalfOpen(5, 15))

	var hits []string
	for v := range e.Intersecting(ivHalfOpen(7, 8)) {
		hits = append(hits, v)
	}
	require.ElementsMatch(t, []string{"a", "b"}, hits)

	var ivs []Interval[OrderedDomain[int]]
	for _, iv := range e.DisjointIntervals(ivHalfOpen(0, 15)) {
		ivs = append(ivs, iv)
	}
	require.Len(t, ivs, 3, "expect [0,5) a, [5,10) a+b, [10,15) b as three disjoint buckets")
}

func TestDisjointEngineEraseNarrowsBucket(t *testing.T) {
	e := newDisjointEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 20))
	e.Erase("a", ivHalfOpen(8, 12), false)

	var ivs []Interval[OrderedDomain[int]]
	for _, iv := range e.ValueIntervals() {
		ivs = append(ivs, iv)
	}
	require.Len(t, ivs, 2)
	require.False(t, e.IsEmpty())
}

func TestDisjointEngineEraseAllClearsBucket(t *testing.T) {
	e := newDisjointEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 10))
	e.Insert("b", ivHalfOpen(0, 10))
	e.Erase("", ivHalfOpen(0, 10), true)

	require.True(t, e.IsEmpty())
}

func TestDisjointEngineCloneIsIndependent(t *testing.T) {
	e := newDisjointEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 10))

	clone := e.Clone()
	clone.Insert("b", ivHalfOpen(20, 30))

	var original []string
	for v := range e.Intersecting(ivHalfOpen(20, 30)) {
		original = append(original, v)
	}
	require.Empty(t, original, "mutating a clone must not affect the source engine")
}

func TestDisjointEngineDisjointIntervalsCoverWholeQuery(t *testing.T) {
	e := newDisjointEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 5))
	e.Insert("b", ivHalfOpen(5, 10))

	var runs int
	for range e.DisjointIntervals(ivHalfOpen(0, 10)) {
		runs++
	}
	require.Equal(t, 2, runs)
}
