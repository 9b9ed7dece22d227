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
	"iter"
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// disjointEngine stores values keyed by value-set rather than by value:
// the engine's own intervals are always pairwise disjoint, and a single
// interval may carry several values that are indistinguishable over its
// span. It is the generalization of the teacher's VersionIntervalSet
// (version_interval_set.go), whose sorted, merge-adjacent []versionInterval
// is the same shape as disjointEngine.buckets with a *set.Set[V] standing
// in for "is a version in range".
type disjointEngine[V comparable, D Domain[D]] struct {
	buckets []disjointBucket[V, D]
}

type disjointBucket[V comparable, D Domain[D]] struct {
	interval Interval[D]
	values   *set.Set[V]
}

func newDisjointEngine[V comparable, D Domain[D]]() *disjointEngine[V, D] {
	return &disjointEngine[V, D]{}
}

// normalize sorts buckets by lower bound and merges adjacent buckets that
// carry identical value sets, exactly mirroring the teacher's
// normalizeIntervals (version_interval.go), generalized from "merge
// touching ranges" to "merge touching ranges with the same value set".
func (e *disjointEngine[V, D]) normalize() {
	sort.Slice(e.buckets, func(i, j int) bool {
		return compareLower(e.buckets[i].interval.Lower, e.buckets[j].interval.Lower) < 0
	})

	merged := e.buckets[:0]
	for _, b := range e.buckets {
		if b.values.Empty() {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].interval.Touches(b.interval) &&
			merged[n-1].values.Equal(b.values) {
			merged[n-1].interval = merged[n-1].interval.Hull(b.interval)
			continue
		}
		merged = append(merged, b)
	}
	e.buckets = merged
}

// splitAt ensures a bucket boundary exists at every edge of iv, so that
// subsequent mutation only ever needs to touch whole buckets.
func (e *disjointEngine[V, D]) splitAt(iv Interval[D]) {
	var next []disjointBucket[V, D]
	for _, b := range e.buckets {
		overlap, ok := b.interval.Intersect(iv)
		if !ok {
			next = append(next, b)
			continue
		}
		if left, ok := b.interval.LeftSubtract(overlap); ok {
			next = append(next, disjointBucket[V, D]{interval: left, values: b.values.Copy()})
		}
		next = append(next, disjointBucket[V, D]{interval: overlap, values: b.values.Copy()})
		if right, ok := b.interval.RightSubtract(overlap); ok {
			next = append(next, disjointBucket[V, D]{interval: right, values: b.values.Copy()})
		}
	}
	e.buckets = next
}

func (e *disjointEngine[V, D]) Insert(value V, iv Interval[D]) {
	if iv.IsEmpty() {
		return
	}
	e.fillGap(iv)
	e.splitAt(iv)
	for i := range e.buckets {
		if _, ok := e.buckets[i].interval.Intersect(iv); ok {
			e.buckets[i].values.Insert(value)
		}
	}
	e.normalize()
}

// fillGap materializes empty buckets across any portion of iv not yet
// covered by any bucket, so splitAt can assume full coverage.
func (e *disjointEngine[V, D]) fillGap(iv Interval[D]) {
	covered := iv
	for _, g := range e.gapsWithin(covered) {
		e.buckets = append(e.buckets, disjointBucket[V, D]{interval: g, values: set.New[V](0)})
	}
}

// gapsWithin walks the (already lower-bound-sorted) buckets and returns
// the maximal sub-intervals of query covered by none of them.
func (e *disjointEngine[V, D]) gapsWithin(query Interval[D]) []Interval[D] {
	var gaps []Interval[D]
	cursor := query.Lower
	for _, b := range e.buckets {
		ov, ok := b.interval.Intersect(query)
		if !ok {
			continue
		}
		if compareLower(cursor, ov.Lower) < 0 {
			if g, ok := NewInterval(cursor, complementOf(ov.Lower)); ok {
				gaps = append(gaps, g)
			}
		}
		if next := complementOf(ov.Upper); compareLower(cursor, next) < 0 {
			cursor = next
		}
	}
	if g, ok := NewInterval(cursor, query.Upper); ok {
		gaps = append(gaps, g)
	}
	return gaps
}

// complementOf flips a bound to the opposite side of the same point: the
// lower-bound-shaped edge of everything strictly above an upper bound, or
// the upper-bound-shaped edge of everything strictly below a lower bound.
func complementOf[D Domain[D]](b Bound[D]) Bound[D] {
	switch b.infinite {
	case boundPositiveInfinity:
		return PositiveInfinityBound[D]()
	case boundNegativeInfinity:
		return NegativeInfinityBound[D]()
	default:
		return Bound[D]{point: b.point, inclusive: !b.inclusive}
	}
}

func (e *disjointEngine[V, D]) Erase(value V, iv Interval[D], eraseAll bool) {
	if iv.IsEmpty() {
		return
	}
	e.splitAt(iv)
	for i := range e.buckets {
		if _, ok := e.buckets[i].interval.Intersect(iv); !ok {
			continue
		}
		if eraseAll {
			e.buckets[i].values = set.New[V](0)
		} else {
			e.buckets[i].values.Remove(value)
		}
	}
	e.normalize()
}

func (e *disjointEngine[V, D]) IsEmpty() bool {
	return len(e.buckets) == 0
}

func (e *disjointEngine[V, D]) Clone() engine[V, D] {
	clone := &disjointEngine[V, D]{buckets: make([]disjointBucket[V, D], len(e.buckets))}
	for i, b := range e.buckets {
		clone.buckets[i] = disjointBucket[V, D]{interval: b.interval, values: b.values.Copy()}
	}
	return clone
}

func (e *disjointEngine[V, D]) ValueIntervals() iter.Seq2[V, Interval[D]] {
	return func(yield func(V, Interval[D]) bool) {
		for _, b := range e.buckets {
			for _, v := range b.values.Slice() {
				if !yield(v, b.interval) {
					return
				}
			}
		}
	}
}

func (e *disjointEngine[V, D]) Intersecting(query Interval[D]) iter.Seq2[V, Interval[D]] {
	return func(yield func(V, Interval[D]) bool) {
		for _, b := range e.buckets {
			ov, ok := b.interval.Intersect(query)
			if !ok {
				continue
			}
			for _, v := range b.values.Slice() {
				if !yield(v, ov) {
					return
				}
			}
		}
	}
}

func (e *disjointEngine[V, D]) Gaps(query Interval[D]) iter.Seq[Interval[D]] {
	return func(yield func(Interval[D]) bool) {
		for _, g := range e.gapsWithDefiniteValues(query, false) {
			if !yield(g) {
				return
			}
		}
	}
}

// gapsWithDefiniteValues returns gaps (nonEmptyOnly=false) or non-empty
// runs (nonEmptyOnly=true), restricted to query, in a single pass over
// buckets.
func (e *disjointEngine[V, D]) gapsWithDefiniteValues(query Interval[D], nonEmptyOnly bool) []Interval[D] {
	var out []Interval[D]
	cursor := query.Lower
	for _, b := range e.buckets {
		ov, ok := b.interval.Intersect(query)
		if !ok {
			continue
		}
		if compareLower(cursor, ov.Lower) < 0 && !nonEmptyOnly {
			if g, ok := NewInterval(cursor, complementOf(ov.Lower)); ok {
				out = append(out, g)
			}
		}
		if nonEmptyOnly && !b.values.Empty() {
			out = append(out, ov)
		}
		if next := complementOf(ov.Upper); compareLower(cursor, next) < 0 {
			cursor = next
		}
	}
	if !nonEmptyOnly {
		if g, ok := NewInterval(cursor, query.Upper); ok {
			out = append(out, g)
		}
	}
	return out
}

func (e *disjointEngine[V, D]) DisjointIntervals(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return func(yield func(*valueSetSnapshot[V], Interval[D]) bool) {
		for _, b := range e.buckets {
			ov, ok := b.interval.Intersect(query)
			if !ok || b.values.Empty() {
				continue
			}
			if !yield(newValueSetSnapshot(b.values.Slice()), ov) {
				return
			}
		}
	}
}

func (e *disjointEngine[V, D]) InitialValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return func(yield func(*valueSetSnapshot[V], Interval[D]) bool) {
		for snap, iv := range e.DisjointIntervals(query) {
			yield(snap, iv)
			return
		}
	}
}

func (e *disjointEngine[V, D]) FinalValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return func(yield func(*valueSetSnapshot[V], Interval[D]) bool) {
		for i := len(e.buckets) - 1; i >= 0; i-- {
			b := e.buckets[i]
			if ov, ok := b.interval.Intersect(query); ok && !b.values.Empty() {
				yield(newValueSetSnapshot(b.values.Slice()), ov)
				return
			}
		}
	}
}

func (e *disjointEngine[V, D]) MergedWith(other engine[V, D], query Interval[D]) engine[V, D] {
	result := e.Clone().(*disjointEngine[V, D])
	for v, iv := range other.ValueIntervals() {
		if ov, ok := iv.Intersect(query); ok {
			result.Insert(v, ov)
		}
	}
	return result
}

func (e *disjointEngine[V, D]) SubtractBy(other engine[V, D], query Interval[D]) engine[V, D] {
	result := e.Clone().(*disjointEngine[V, D])
	for v, iv := range other.ValueIntervals() {
		if ov, ok := iv.Intersect(query); ok {
			result.Erase(v, ov, false)
		}
	}
	return result
}

var _ engine[int, OrderedDomain[int]] = (*disjointEngine[int, OrderedDomain[int]])(nil)
