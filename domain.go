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
	"cmp"
	"time"
)

// Domain is the totally ordered one-dimensional type that interval bounds
// are drawn from: integers, floating-point coordinates, calendar dates,
// wall-clock timestamps, or any custom type with a well-defined order.
//
// Domain plays the same role for Interval that Version plays for the
// teacher's version ranges: a single Compare method is all the interval
// algebra needs.
type Domain[D any] interface {
	// Compare returns negative if this value sorts before other, zero if
	// equal, positive if after.
	Compare(other D) int
}

// OrderedDomain adapts any stdlib-ordered type (integers, floats, strings)
// into a Domain by wrapping it and delegating to cmp.Compare.
//
// Example:
//
//	type Tick = OrderedDomain[int]
//	lo := Tick{100}
type OrderedDomain[T cmp.Ordered] struct {
	Value T
}

// Compare implements Domain.
func (o OrderedDomain[T]) Compare(other OrderedDomain[T]) int {
	return cmp.Compare(o.Value, other.Value)
}

// TimeDomain adapts time.Time into a Domain, for wall-clock or calendar
// interval dictionaries.
type TimeDomain struct {
	Value time.Time
}

// Compare implements Domain.
func (t TimeDomain) Compare(other TimeDomain) int {
	return t.Value.Compare(other.Value)
}

var (
	_ Domain[OrderedDomain[int]] = OrderedDomain[int]{}
	_ Domain[TimeDomain]         = TimeDomain{}
)
