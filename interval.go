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

import "fmt"

// Interval represents a contiguous range over a totally ordered Domain D,
// with explicit bound semantics (open/closed on either edge, or unbounded).
//
// Examples (half-open, D = int):
//   - [0, 10) is NewInterval(NewLowerBound(0, true), NewUpperBound(10, false))
//   - [5, ∞) is NewInterval(NewLowerBound(5, true), PositiveInfinityBound())
//
// Empty intervals exist and are ignored by every mutating engine operation.
type Interval[D Domain[D]] struct {
	Lower Bound[D]
	Upper Bound[D]
}

// NewInterval creates an interval from bounds, returning false if the
// interval is empty.
func NewInterval[D Domain[D]](lower, upper Bound[D]) (Interval[D], bool) {
	iv := Interval[D]{Lower: lower, Upper: upper}
	if iv.IsEmpty() {
		return Interval[D]{}, false
	}
	return iv, true
}

// IsEmpty returns true if the interval contains no points. This happens
// when the upper bound is less than the lower bound, or when both bounds
// are at the same point but at least one is exclusive.
func (iv Interval[D]) IsEmpty() bool {
	if iv.Lower.IsPosInfinity() || iv.Upper.IsNegInfinity() {
		return true
	}
	if iv.Lower.IsNegInfinity() || iv.Upper.IsPosInfinity() {
		return false
	}

	cmp := iv.Lower.point.Compare(iv.Upper.point)
	switch {
	case cmp < 0:
		return false
	case cmp > 0:
		return true
	default:
		return !iv.Lower.inclusive || !iv.Upper.inclusive
	}
}

// Contains returns true if point falls within this interval.
func (iv Interval[D]) Contains(point D) bool {
	if !iv.Lower.IsNegInfinity() {
		if cmp := point.Compare(iv.Lower.point); cmp < 0 {
			return false
		} else if cmp == 0 && !iv.Lower.inclusive {
			return false
		}
	}
	if !iv.Upper.IsPosInfinity() {
		if cmp := point.Compare(iv.Upper.point); cmp > 0 {
			return false
		} else if cmp == 0 && !iv.Upper.inclusive {
			return false
		}
	}
	return true
}

// upperLessThanLower returns true if upper is strictly less than lower,
// i.e. an interval ending at upper and one starting at lower share no
// point (they may still touch, as [0,5) and [5,10) do).
func upperLessThanLower[D Domain[D]](upper, lower Bound[D]) bool {
	switch {
	case upper.IsNegInfinity():
		return !lower.IsNegInfinity()
	case lower.IsPosInfinity():
		return !upper.IsPosInfinity()
	case upper.IsPosInfinity(), lower.IsNegInfinity():
		return false
	}

	cmp := upper.point.Compare(lower.point)
	if cmp < 0 {
		return true
	}
	if cmp > 0 {
		return false
	}
	return !upper.inclusive || !lower.inclusive
}

// Overlaps returns true if this interval shares any points with other.
func (iv Interval[D]) Overlaps(other Interval[D]) bool {
	if upperLessThanLower(iv.Upper, other.Lower) {
		return false
	}
	if upperLessThanLower(other.Upper, iv.Lower) {
		return false
	}
	return true
}

// Touches returns true if this interval overlaps or is adjacent to other,
// i.e. Hull(iv, other) has no gap. Adjacency at a shared point is a
// strictly looser test than Overlaps: [0,5) and [5,10) share no point yet
// touch, since every point excluded from one side is included by the
// other. Only a shared point excluded from BOTH sides leaves a genuine
// one-point gap.
func (iv Interval[D]) Touches(other Interval[D]) bool {
	if iv.Overlaps(other) {
		return true
	}
	return boundsAdjoin(iv.Upper, other.Lower) || boundsAdjoin(other.Upper, iv.Lower)
}

// boundsAdjoin returns true if an interval ending at upper and one
// starting at lower meet at the same point with no gap between them.
func boundsAdjoin[D Domain[D]](upper, lower Bound[D]) bool {
	if upper.infinite != boundFinite || lower.infinite != boundFinite {
		return false
	}
	if upper.point.Compare(lower.point) != 0 {
		return false
	}
	return upper.inclusive || lower.inclusive
}

// ExclusiveLess returns true if this interval lies strictly before other
// with no shared point; the two may still touch, as [0,5) and [5,10) do.
func (iv Interval[D]) ExclusiveLess(other Interval[D]) bool {
	return upperLessThanLower(iv.Upper, other.Lower)
}

// MoreOrTouches returns true if this interval starts at or after other's
// start, or touches/overlaps it.
func (iv Interval[D]) MoreOrTouches(other Interval[D]) bool {
	return iv.Touches(other) || compareLower(iv.Lower, other.Lower) >= 0
}

// Hull returns the smallest interval containing both this interval and
// other.
func (iv Interval[D]) Hull(other Interval[D]) Interval[D] {
	return Interval[D]{
		Lower: minBound(iv.Lower, other.Lower, compareLower[D]),
		Upper: maxBound(iv.Upper, other.Upper, compareUpper[D]),
	}
}

// Intersect returns the intersection of this interval and other, and false
// if the intersection is empty.
func (iv Interval[D]) Intersect(other Interval[D]) (Interval[D], bool) {
	return NewInterval(
		maxBound(iv.Lower, other.Lower, compareLower[D]),
		minBound(iv.Upper, other.Upper, compareUpper[D]),
	)
}

// Covers returns true if this interval completely contains other.
func (iv Interval[D]) Covers(other Interval[D]) bool {
	if compareLower(iv.Lower, other.Lower) > 0 {
		return false
	}
	if compareUpper(iv.Upper, other.Upper) < 0 {
		return false
	}
	return true
}

// complementLowerBound returns the lower bound of the complement interval
// lying above this interval.
func (iv Interval[D]) complementLowerBound() Bound[D] {
	switch iv.Upper.infinite {
	case boundPositiveInfinity:
		return PositiveInfinityBound[D]()
	case boundNegativeInfinity:
		return NegativeInfinityBound[D]()
	default:
		return Bound[D]{point: iv.Upper.point, inclusive: !iv.Upper.inclusive}
	}
}

// complementUpperBound returns the upper bound of the complement interval
// lying below this interval.
func (iv Interval[D]) complementUpperBound() Bound[D] {
	switch iv.Lower.infinite {
	case boundNegativeInfinity:
		return NegativeInfinityBound[D]()
	case boundPositiveInfinity:
		return PositiveInfinityBound[D]()
	default:
		return Bound[D]{point: iv.Lower.point, inclusive: !iv.Lower.inclusive}
	}
}

// InnerComplement returns the open gap strictly between this interval and
// a later, disjoint other interval. Returns false if there is no gap
// (they touch or overlap).
func (iv Interval[D]) InnerComplement(other Interval[D]) (Interval[D], bool) {
	return NewInterval(iv.complementLowerBound(), other.complementUpperBound())
}

// LeftSubtract returns the portion of this interval strictly below other's
// lower bound (i.e. this minus other, keeping only the left remainder).
// Returns false if nothing remains.
func (iv Interval[D]) LeftSubtract(other Interval[D]) (Interval[D], bool) {
	return NewInterval(iv.Lower, other.complementUpperBound())
}

// RightSubtract returns the portion of this interval strictly above
// other's upper bound (this minus other, keeping only the right
// remainder). Returns false if nothing remains.
func (iv Interval[D]) RightSubtract(other Interval[D]) (Interval[D], bool) {
	return NewInterval(other.complementLowerBound(), iv.Upper)
}

// LeftExtend returns this interval extended downward so its lower bound is
// at most the bound given by point and inclusive; an interval that
// already starts at or below that bound is returned unchanged.
func (iv Interval[D]) LeftExtend(point D, inclusive bool) Interval[D] {
	extended := Bound[D]{point: point, inclusive: inclusive}
	return Interval[D]{
		Lower: minBound(iv.Lower, extended, compareLower[D]),
		Upper: iv.Upper,
	}
}

// RightExtend returns this interval extended upward so its upper bound is
// at least point.
func (iv Interval[D]) RightExtend(point D, inclusive bool) Interval[D] {
	extended := Bound[D]{point: point, inclusive: inclusive}
	return Interval[D]{
		Lower: iv.Lower,
		Upper: maxBound(iv.Upper, extended, compareUpper[D]),
	}
}

// String returns a human-readable representation, e.g. "[0, 10)".
func (iv Interval[D]) String() string {
	if iv.IsEmpty() {
		return "∅"
	}

	var lo, hi string
	if iv.Lower.IsNegInfinity() {
		lo = "(-∞"
	} else if iv.Lower.inclusive {
		lo = fmt.Sprintf("[%v", iv.Lower.point)
	} else {
		lo = fmt.Sprintf("(%v", iv.Lower.point)
	}

	if iv.Upper.IsPosInfinity() {
		hi = "+∞)"
	} else if iv.Upper.inclusive {
		hi = fmt.Sprintf("%v]", iv.Upper.point)
	} else {
		hi = fmt.Sprintf("%v)", iv.Upper.point)
	}

	return lo + ", " + hi
}
