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

// Bound represents either the lower or upper edge of an Interval over a
// Domain D. Bounds can be finite (carrying a specific point), or infinite
// (unbounded in one direction).
//
// The `infinite` field uses sentinel values, generalizing the teacher's
// versionBound to an arbitrary ordered domain:
//   - boundNegativeInfinity (-1): -∞, no lower limit
//   - boundFinite (0): a specific point
//   - boundPositiveInfinity (1): +∞, no upper limit
//
// `inclusive` determines whether the bound includes the point itself.
type Bound[D Domain[D]] struct {
	point     D
	inclusive bool
	infinite  int8
}

const (
	boundNegativeInfinity int8 = -1
	boundFinite           int8 = 0
	boundPositiveInfinity int8 = 1
)

// NewLowerBound creates a finite lower bound from a point.
func NewLowerBound[D Domain[D]](point D, inclusive bool) Bound[D] {
	return Bound[D]{point: point, inclusive: inclusive}
}

// NewUpperBound creates a finite upper bound from a point.
func NewUpperBound[D Domain[D]](point D, inclusive bool) Bound[D] {
	return Bound[D]{point: point, inclusive: inclusive}
}

// NegativeInfinityBound returns a bound representing -∞.
func NegativeInfinityBound[D Domain[D]]() Bound[D] {
	return Bound[D]{infinite: boundNegativeInfinity, inclusive: true}
}

// PositiveInfinityBound returns a bound representing +∞.
func PositiveInfinityBound[D Domain[D]]() Bound[D] {
	return Bound[D]{infinite: boundPositiveInfinity, inclusive: true}
}

// IsNegInfinity returns true if this bound represents -∞.
func (b Bound[D]) IsNegInfinity() bool {
	return b.infinite == boundNegativeInfinity
}

// IsPosInfinity returns true if this bound represents +∞.
func (b Bound[D]) IsPosInfinity() bool {
	return b.infinite == boundPositiveInfinity
}

// IsFinite returns true if this bound carries a specific point.
func (b Bound[D]) IsFinite() bool {
	return b.infinite == boundFinite
}

// Point returns the finite point of the bound. Only meaningful when
// IsFinite() is true.
func (b Bound[D]) Point() D {
	return b.point
}

// Inclusive returns whether the bound includes its point.
func (b Bound[D]) Inclusive() bool {
	return b.inclusive
}

// compareLower compares two lower bounds.
// Returns negative if a < b, zero if equal, positive if a > b.
// For lower bounds, inclusive sorts before exclusive at the same point.
func compareLower[D Domain[D]](a, b Bound[D]) int {
	switch {
	case a.infinite == boundNegativeInfinity && b.infinite == boundNegativeInfinity:
		return 0
	case a.infinite == boundNegativeInfinity:
		return -1
	case b.infinite == boundNegativeInfinity:
		return 1
	case a.infinite == boundPositiveInfinity && b.infinite == boundPositiveInfinity:
		return 0
	case a.infinite == boundPositiveInfinity:
		return 1
	case b.infinite == boundPositiveInfinity:
		return -1
	default:
		if cmp := a.point.Compare(b.point); cmp != 0 {
			return cmp
		}
		if a.inclusive == b.inclusive {
			return 0
		}
		if a.inclusive {
			return -1
		}
		return 1
	}
}

// compareUpper compares two upper bounds.
// Returns negative if a < b, zero if equal, positive if a > b.
// For upper bounds, inclusive sorts after exclusive at the same point.
func compareUpper[D Domain[D]](a, b Bound[D]) int {
	switch {
	case a.infinite == boundPositiveInfinity && b.infinite == boundPositiveInfinity:
		return 0
	case a.infinite == boundPositiveInfinity:
		return 1
	case b.infinite == boundPositiveInfinity:
		return -1
	case a.infinite == boundNegativeInfinity && b.infinite == boundNegativeInfinity:
		return 0
	case a.infinite == boundNegativeInfinity:
		return -1
	case b.infinite == boundNegativeInfinity:
		return 1
	default:
		if cmp := a.point.Compare(b.point); cmp != 0 {
			return cmp
		}
		if a.inclusive == b.inclusive {
			return 0
		}
		if a.inclusive {
			return 1
		}
		return -1
	}
}

// minBound returns the minimum of two bounds using a comparison function.
func minBound[D Domain[D]](a, b Bound[D], compare func(Bound[D], Bound[D]) int) Bound[D] {
	if compare(a, b) <= 0 {
		return a
	}
	return b
}

// maxBound returns the maximum of two bounds using a comparison function.
func maxBound[D Domain[D]](a, b Bound[D], compare func(Bound[D], Bound[D]) int) Bound[D] {
	if compare(a, b) >= 0 {
		return a
	}
	return b
}
