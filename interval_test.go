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

import "testing"

func ivHalfOpen(lo, hi int) Interval[OrderedDomain[int]] {
	iv, _ := NewInterval(NewLowerBound(od(lo), true), NewUpperBound(od(hi), false))
	return iv
}

func TestIntervalIsEmpty(t *testing.T) {
	if _, ok := NewInterval(NewLowerBound(od(5), true), NewUpperBound(od(5), false)); ok {
		t.Fatalf("[5,5) should be empty")
	}
	if _, ok := NewInterval(NewLowerBound(od(5), true), NewUpperBound(od(5), true)); !ok {
		t.Fatalf("[5,5] should not be empty")
	}
}

func TestIntervalContains(t *testing.T) {
	iv := ivHalfOpen(0, 10)
	if !iv.Contains(od(0)) {
		t.Fatalf("half-open interval should contain its lower edge")
	}
	if iv.Contains(od(10)) {
		t.Fatalf("half-open interval should not contain its upper edge")
	}
}

func TestIntervalOverlapsAndTouches(t *testing.T) {
	a := ivHalfOpen(0, 5)
	b := ivHalfOpen(5, 10)
	if a.Overlaps(b) {
		t.Fatalf("[0,5) and [5,10) should not overlap")
	}
	if !a.Touches(b) {
		t.Fatalf("[0,5) and [5,10) should touch")
	}
	c := ivHalfOpen(6, 10)
	if a.Touches(c) {
		t.Fatalf("[0,5) and [6,10) should not touch")
	}
}

func TestIntervalHullAndIntersect(t *testing.T) {
	a := ivHalfOpen(0, 5)
	b := ivHalfOpen(3, 10)
	hull := a.Hull(b)
	if !hull.Contains(od(0)) || !hull.Contains(od(9)) || hull.Contains(od(10)) {
		t.Fatalf("hull of [0,5) and [3,10) should be [0,10), got %s", hull)
	}
	inter, ok := a.Intersect(b)
	if !ok || !inter.Contains(od(3)) || inter.Contains(od(5)) {
		t.Fatalf("intersection of [0,5) and [3,10) should be [3,5), got %s", inter)
	}
}

func TestIntervalInnerComplement(t *testing.T) {
	a := ivHalfOpen(0, 5)
	b := ivHalfOpen(10, 15)
	gap, ok := a.InnerComplement(b)
	if !ok || !gap.Contains(od(7)) || gap.Contains(od(4)) || gap.Contains(od(10)) {
		t.Fatalf("inner complement of [0,5) and [10,15) should be [5,10), got %s", gap)
	}

	touching := ivHalfOpen(5, 9)
	if _, ok := a.InnerComplement(touching); ok {
		t.Fatalf("touching intervals should have no inner complement")
	}
}

func TestIntervalLeftRightSubtract(t *testing.T) {
	host := ivHalfOpen(0, 10)
	mid := ivHalfOpen(3, 7)

	left, ok := host.LeftSubtract(mid)
	if !ok || !left.Contains(od(0)) || left.Contains(od(3)) {
		t.Fatalf("left subtract should yield [0,3), got %s", left)
	}
	right, ok := host.RightSubtract(mid)
	if !ok || right.Contains(od(6)) || !right.Contains(od(7)) {
		t.Fatalf("right subtract should yield [7,10), got %s", right)
	}
}

func TestIntervalCovers(t *testing.T) {
	outer := ivHalfOpen(0, 10)
	inner := ivHalfOpen(2, 8)
	if !outer.Covers(inner) {
		t.Fatalf("[0,10) should cover [2,8)")
	}
	if inner.Covers(outer) {
		t.Fatalf("[2,8) should not cover [0,10)")
	}
}

func TestIntervalExtend(t *testing.T) {
	iv := ivHalfOpen(5, 10)
	left := iv.LeftExtend(od(0), true)
	if !left.Contains(od(0)) || left.Contains(od(10)) {
		t.Fatalf("LeftExtend should produce [0,10), got %s", left)
	}
	right := iv.RightExtend(od(20), false)
	if !right.Contains(od(19)) || right.Contains(od(20)) {
		t.Fatalf("RightExtend should produce [5,20), got %s", right)
	}
}
