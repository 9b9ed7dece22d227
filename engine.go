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

import "iter"

// engine is the storage contract shared by the three interchangeable
// per-key engines (disjoint, tree, AIL). Dict and BiDict are built purely
// from this vocabulary and never inspect an engine's internal layout,
// so any engine can swap in for any other without a caller-visible
// difference beyond performance.
//
// All producer methods return iter.Seq or iter.Seq2 values (Go 1.23 range-over-func),
// the idiomatic replacement for the spec's coroutine-based generators:
// single-pass, non-restartable, and safe to break out of early.
type engine[V comparable, D Domain[D]] interface {
	// Insert associates value with iv, merging with existing content
	// according to the engine's own canonicalisation rules.
	Insert(value V, iv Interval[D])

	// Erase removes value from iv, splitting existing content as needed.
	// When eraseAll is true, value is ignored and every value over iv is
	// removed.
	Erase(value V, iv Interval[D], eraseAll bool)

	// IsEmpty returns true if the engine holds no content.
	IsEmpty() bool

	// Clone returns a deep copy safe for independent mutation.
	Clone() engine[V, D]

	// ValueIntervals yields every stored (value, interval) pair in
	// lower-bound order; the order of pairs sharing a lower bound is not
	// defined.
	ValueIntervals() iter.Seq2[V, Interval[D]]

	// Intersecting yields, for every stored (value, interval) pair that
	// overlaps query, the value and the part of its interval inside query.
	Intersecting(query Interval[D]) iter.Seq2[V, Interval[D]]

	// Gaps yields the maximal sub-intervals of query touched by no
	// stored value.
	Gaps(query Interval[D]) iter.Seq[Interval[D]]

	// DisjointIntervals yields the maximal disjoint decomposition of
	// query: runs where the set of active values is constant.
	DisjointIntervals(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]]

	// InitialValues yields at most one pair: the first run of
	// DisjointIntervals(query) and the values active over it.
	InitialValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]]

	// FinalValues yields at most one pair: the last run of
	// DisjointIntervals(query) and the values active over it.
	FinalValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]]

	// MergedWith returns a new engine holding the union of this engine's
	// content and other's, restricted to query.
	MergedWith(other engine[V, D], query Interval[D]) engine[V, D]

	// SubtractBy returns a new engine holding this engine's content minus
	// other's, restricted to query.
	SubtractBy(other engine[V, D], query Interval[D]) engine[V, D]
}

// valueSetSnapshot is a small immutable wrapper around the set of values
// active over a run, shared by every engine's InitialValues/FinalValues/
// DisjointIntervals producers so that adaptor.go can consume them
// generically regardless of which concrete engine produced them.
type valueSetSnapshot[V comparable] struct {
	values []V
}

// Values returns the snapshot's values. The caller must not mutate the
// returned slice.
func (s *valueSetSnapshot[V]) Values() []V {
	if s == nil {
		return nil
	}
	return s.values
}

func newValueSetSnapshot[V comparable](values []V) *valueSetSnapshot[V] {
	return &valueSetSnapshot[V]{values: values}
}
