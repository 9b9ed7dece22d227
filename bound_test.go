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

func od(v int) OrderedDomain[int] { return OrderedDomain[int]{Value: v} }

func TestCompareLowerInfinities(t *testing.T) {
	neg := NegativeInfinityBound[OrderedDomain[int]]()
	pos := PositiveInfinityBound[OrderedDomain[int]]()
	finite := NewLowerBound(od(5), true)

	if compareLower(neg, neg) != 0 {
		t.Fatalf("neg infinity should equal itself")
	}
	if compareLower(neg, finite) >= 0 {
		t.Fatalf("-inf should sort before any finite lower bound")
	}
	if compareLower(pos, finite) <= 0 {
		t.Fatalf("+inf should sort after any finite lower bound")
	}
}

func TestCompareLowerInclusiveTieBreak(t *testing.T) {
	inclusive := NewLowerBound(od(5), true)
	exclusive := NewLowerBound(od(5), false)
	if compareLower(inclusive, exclusive) >= 0 {
		t.Fatalf("inclusive lower bound should sort before exclusive at same point")
	}
}

func TestCompareUpperInclusiveTieBreak(t *testing.T) {
	inclusive := NewUpperBound(od(5), true)
	exclusive := NewUpperBound(od(5), false)
	if compareUpper(inclusive, exclusive) <= 0 {
		t.Fatalf("inclusive upper bound should sort after exclusive at same point")
	}
}

func TestBoundPredicates(t *testing.T) {
	neg := NegativeInfinityBound[OrderedDomain[int]]()
	if !neg.IsNegInfinity() || neg.IsFinite() || neg.IsPosInfinity() {
		t.Fatalf("negative infinity bound predicates wrong")
	}
	finite := NewLowerBound(od(3), true)
	if !finite.IsFinite() || finite.Point() != od(3) || !finite.Inclusive() {
		t.Fatalf("finite bound predicates wrong")
	}
}
