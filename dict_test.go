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

var allEngines = []EngineKind{EngineDisjoint, EngineTree, EngineAIL}

func newTestDict(kind EngineKind) *Dict[string, string, OrderedDomain[int]] {
	return NewDict[string, string, OrderedDomain[int]](WithEngine(kind))
}

func TestDictInsertAndFind(t *testing.T) {
	for _, kind := range allEngines {
		d := newTestDict(kind)
		d.Insert("emp1", "dept-a", ivHalfOpen(2020, 2022))

		var got []string
		for v := range d.Find("emp1", ivHalfOpen(2021, 2021+1)) {
			got = append(got, v)
		}
		require.Equal(t, []string{"dept-a"}, got, "engine %v", kind)
	}
}

func TestDictEraseSplitsInterval(t *testing.T) {
	for _, kind := range allEngines {
		d := newTestDict(kind)
		d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2010))
		d.Erase("emp1", "dept-a", ivHalfOpen(2003, 2005))

		var got []Interval[OrderedDomain[int]]
		for _, iv := range d.Find("emp1", ivHalfOpen(1990, 2020)) {
			got = append(got, iv)
		}
		require.Len(t, got, 2, "engine %v: erasing the middle should leave two pieces", kind)
	}
}

func TestDictOverlappingValuesCoexist(t *testing.T) {
	for _, kind := range allEngines {
		d := newTestDict(kind)
		d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2010))
		d.Insert("emp1", "dept-b", ivHalfOpen(2005, 2015))

		values := map[string]bool{}
		for v := range d.Find("emp1", ivHalfOpen(2006, 2007)) {
			values[v] = true
		}
		require.True(t, values["dept-a"] && values["dept-b"], "engine %v: overlap should hold both values", kind)
	}
}

func TestDictGapsBetweenRuns(t *testing.T) {
	e := newDisjointEngine[string, OrderedDomain[int]]()
	e.Insert("a", ivHalfOpen(0, 5))
	e.Insert("a", ivHalfOpen(10, 15))

	var gaps []Interval[OrderedDomain[int]]
	for g := range e.Gaps(ivHalfOpen(0, 15)) {
		gaps = append(gaps, g)
	}
	require.Len(t, gaps, 1)
	require.True(t, gaps[0].Contains(od(7)))
}

func TestDictFillGapsJoinsSameValue(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2005))
	d.Insert("emp1", "dept-a", ivHalfOpen(2007, 2010))
	d.FillGaps("emp1", nil)

	var got []string
	for v := range d.Find("emp1", ivHalfOpen(2005, 2007)) {
		got = append(got, v)
	}
	require.Equal(t, []string{"dept-a"}, got)
}

func TestDictFillGapsLeavesDifferentValuesEmpty(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2005))
	d.Insert("emp1", "dept-b", ivHalfOpen(2007, 2010))
	d.FillGaps("emp1", nil)

	var got []string
	for v := range d.Find("emp1", ivHalfOpen(2005, 2007)) {
		got = append(got, v)
	}
	require.Empty(t, got)
}

func TestDictFillToStartAndEnd(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2010, 2015))
	d.FillToStart("emp1", NegativeInfinityBound[OrderedDomain[int]](), nil)
	d.FillToEnd("emp1", PositiveInfinityBound[OrderedDomain[int]](), nil)

	var got []string
	for v := range d.Find("emp1", ivHalfOpen(1900, 2100)) {
		got = append(got, v)
	}
	require.Equal(t, []string{"dept-a"}, got)
}

// stepByYears builds a BoundStep that walks years away from a point,
// forward as an upper-exclusive bound or backward as a lower-inclusive
// bound, matching the shape ExtendIntoGaps/FillToStart/FillToEnd/FillGaps
// need from whichever side they're capping.
func stepByYears(years int) BoundStep[OrderedDomain[int]] {
	return func(from Bound[OrderedDomain[int]], forward bool) Bound[OrderedDomain[int]] {
		if forward {
			return NewUpperBound(od(from.point.Value+years), false)
		}
		return NewLowerBound(od(from.point.Value-years), true)
	}
}

func TestDictFillToStartAndEndRespectMaxExtension(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2010, 2015))
	d.FillToStart("emp1", NegativeInfinityBound[OrderedDomain[int]](), stepByYears(3))
	d.FillToEnd("emp1", PositiveInfinityBound[OrderedDomain[int]](), stepByYears(3))

	var got []Interval[OrderedDomain[int]]
	for _, iv := range d.Find("emp1", ivHalfOpen(1900, 2100)) {
		got = append(got, iv)
	}
	require.Len(t, got, 1)
	require.Equal(t, ivHalfOpen(2007, 2018), got[0], "a 3-year cap should only reach 2007..2018 from the 2010..2015 run")
}

func TestDictFillGapsRespectsMaxExtension(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2005))
	d.Insert("emp1", "dept-a", ivHalfOpen(2015, 2020))
	d.FillGaps("emp1", stepByYears(2))

	var got []string
	for v := range d.Find("emp1", ivHalfOpen(2009, 2011)) {
		got = append(got, v)
	}
	require.Empty(t, got, "a 2-year reach from each border cannot meet across a 10-year gap, so the middle stays empty")
}

func TestDictExtendIntoGapsFillsFromRequestedDirection(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2005))
	d.Insert("emp1", "dept-b", ivHalfOpen(2015, 2020))

	d.ExtendIntoGaps("emp1", stepByYears(3), ExtendForwardOnly)

	var got []string
	for v := range d.Find("emp1", ivHalfOpen(2006, 2007)) {
		got = append(got, v)
	}
	require.Equal(t, []string{"dept-a"}, got, "ExtendForwardOnly fills the gap using the value before it, not after")

	var afterReach []string
	for v := range d.Find("emp1", ivHalfOpen(2010, 2011)) {
		afterReach = append(afterReach, v)
	}
	require.Empty(t, afterReach, "a 3-year forward reach from 2005 should not cover 2010")
}

func TestNewDictFromBuildsFromTriples(t *testing.T) {
	triples := []Triple[string, string, OrderedDomain[int]]{
		{Key: "emp1", Value: "dept-a", Interval: ivHalfOpen(2000, 2005)},
		{Key: "emp1", Value: "dept-a", Interval: ivHalfOpen(2005, 2010)},
		{Key: "emp2", Value: "dept-b", Interval: ivHalfOpen(2000, 2010)},
	}
	d := NewDictFrom(triples, WithEngine(EngineTree))

	var emp1 []Interval[OrderedDomain[int]]
	for _, iv := range d.Find("emp1", ivHalfOpen(1990, 2020)) {
		emp1 = append(emp1, iv)
	}
	require.Len(t, emp1, 1, "touching same-value triples for emp1 should hull-merge into one run")
	require.Equal(t, ivHalfOpen(2000, 2010), emp1[0])

	var emp2 []string
	for v := range d.Find("emp2", ivHalfOpen(2001, 2002)) {
		emp2 = append(emp2, v)
	}
	require.Equal(t, []string{"dept-b"}, emp2)
}

func TestDictFillGapsWith(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2005))
	d.FillGapsWith("emp1", "unknown", ivHalfOpen(2000, 2010))

	var got []string
	for v := range d.Find("emp1", ivHalfOpen(2005, 2010)) {
		got = append(got, v)
	}
	require.Equal(t, []string{"unknown"}, got)
}

func TestDictMergeAndSubtract(t *testing.T) {
	a := newTestDict(EngineTree)
	a.Insert("emp1", "dept-a", ivHalfOpen(2000, 2010))
	b := newTestDict(EngineTree)
	b.Insert("emp1", "dept-b", ivHalfOpen(2005, 2015))

	merged := a.Merge(b)
	values := map[string]bool{}
	for v := range merged.Find("emp1", ivHalfOpen(2006, 2007)) {
		values[v] = true
	}
	require.True(t, values["dept-a"] && values["dept-b"])

	subtracted := merged.Subtract(b)
	var remaining []string
	for v := range subtracted.Find("emp1", ivHalfOpen(2006, 2007)) {
		remaining = append(remaining, v)
	}
	require.Equal(t, []string{"dept-a"}, remaining)
}

func TestDictInvertSwapsKeysAndValues(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2010))

	inv := d.Invert()
	var got []string
	for k := range inv.Find("dept-a", ivHalfOpen(2000, 2010)) {
		got = append(got, k)
	}
	require.Equal(t, []string{"emp1"}, got)
}

func TestJoinedToComposesThroughIntermediate(t *testing.T) {
	empToDept := NewDict[string, string, OrderedDomain[int]](WithEngine(EngineTree))
	empToDept.Insert("emp1", "dept-a", ivHalfOpen(2000, 2010))

	deptToFloor := NewDict[string, int, OrderedDomain[int]](WithEngine(EngineTree))
	deptToFloor.Insert("dept-a", 3, ivHalfOpen(1990, 2020))

	empToFloor := JoinedTo(empToDept, deptToFloor, DiscardPolicy[int]())

	var got []int
	for v := range empToFloor.Find("emp1", ivHalfOpen(2000, 2010)) {
		got = append(got, v)
	}
	require.Equal(t, []int{3}, got)
}

func TestFlattenDiscardsAmbiguousRuns(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp1", "dept-a", ivHalfOpen(2000, 2010))
	d.Insert("emp1", "dept-b", ivHalfOpen(2005, 2015))

	flat := d.Flatten(DiscardPolicy[string]())
	var got []string
	for v := range flat.Find("emp1", ivHalfOpen(2006, 2007)) {
		got = append(got, v)
	}
	require.Empty(t, got, "ambiguous overlap should be discarded")

	var unambiguous []string
	for v := range flat.Find("emp1", ivHalfOpen(2001, 2002)) {
		unambiguous = append(unambiguous, v)
	}
	require.Equal(t, []string{"dept-a"}, unambiguous)
}

func TestDumpIsDeterministic(t *testing.T) {
	d := newTestDict(EngineTree)
	d.Insert("emp2", "dept-b", ivHalfOpen(2000, 2010))
	d.Insert("emp1", "dept-a", ivHalfOpen(1990, 1995))

	first := d.Dump()
	second := d.Dump()
	require.Equal(t, first, second)
	require.Contains(t, first, "emp1")
	require.Contains(t, first, "emp2")
}
