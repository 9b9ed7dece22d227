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
)

// nonDisjointAdaptor computes the lazy producers shared by the
// interval-tree and AIL engines (both store possibly-overlapping
// ValueIntervals, unlike disjointEngine). It is grounded on
// non_disjoint.h / disjoint_adaptor.h from the original C++
// implementation, expressed with Go's range-over-func iterators in place
// of the C++ coroutine generators.
//
// The adaptor only needs one primitive from its host engine:
// Intersecting, which yields overlapping (value, interval) pairs for a
// query window. Every producer below is built from that single
// primitive plus the pure Interval algebra in interval.go.
type nonDisjointAdaptor[V comparable, D Domain[D]] struct {
	source func(query Interval[D]) iter.Seq2[V, Interval[D]]
}

func newNonDisjointAdaptor[V comparable, D Domain[D]](source func(Interval[D]) iter.Seq2[V, Interval[D]]) *nonDisjointAdaptor[V, D] {
	return &nonDisjointAdaptor[V, D]{source: source}
}

// edgePoint is a single change-of-value-set boundary inside query,
// carrying the values that become active (enter) or inactive (exit) at
// that point.
type edgePoint[V comparable, D Domain[D]] struct {
	bound Bound[D]
	enter []V
	exit  []V
}

// sweep collects every lower/upper edge of every overlapping interval
// within query and returns them sorted, merging edges that land on the
// same point. This is the shared first step of DisjointIntervals,
// InitialValues, FinalValues and Gaps: the C++ original computes the same
// sweep using a std::map keyed by point; Go has no ordered map, so the
// edges are collected into a slice and sorted once.
func (a *nonDisjointAdaptor[V, D]) sweep(query Interval[D]) []edgePoint[V, D] {
	type rawEdge struct {
		bound   Bound[D]
		isLower bool
		value   V
	}
	var raw []rawEdge
	for v, iv := range a.source(query) {
		ov, ok := iv.Intersect(query)
		if !ok {
			continue
		}
		// Both edges are stored as a single "new state begins here"
		// transition bound: a lower bound's own inclusive flag already
		// means that, but an upper bound's inclusive flag means the
		// OLD state still holds at that point, so it must be flipped to
		// read as where the state following it begins. Resolving both
		// edge kinds into this one frame is what lets an upper-exclusive
		// edge and a lower-inclusive edge at the same coordinate collapse
		// into a single point below, instead of two points bracketing a
		// spurious zero-width run.
		raw = append(raw, rawEdge{bound: ov.Lower, isLower: true, value: v})
		raw = append(raw, rawEdge{bound: complementOf(ov.Upper), isLower: false, value: v})
	}

	var points []edgePoint[V, D]
	for _, r := range raw {
		idx := -1
		for i := range points {
			if boundsAtSamePoint(points[i].bound, r.bound) {
				idx = i
				break
			}
		}
		if idx == -1 {
			points = append(points, edgePoint[V, D]{bound: r.bound})
			idx = len(points) - 1
		}
		if r.isLower {
			points[idx].enter = append(points[idx].enter, r.value)
		} else {
			points[idx].exit = append(points[idx].exit, r.value)
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return compareLower(points[i].bound, points[j].bound) < 0
	})
	return points
}

// boundsAtSamePoint reports whether a and b are the identical resolved
// transition bound: same coordinate and same inclusive side. Edges only
// coalesce into a single sweep point when they resolve to exactly the
// same transition — which is precisely the condition under which a
// touching pair (one upper-exclusive, one lower-inclusive, or vice
// versa) leaves no gap between them; two edges that merely share a
// coordinate without resolving to the same transition (e.g. one
// exclusive on each side) still leave a genuine single-point gap and
// must stay distinct points.
func boundsAtSamePoint[D Domain[D]](a, b Bound[D]) bool {
	if a.infinite != b.infinite {
		return false
	}
	if a.infinite != boundFinite {
		return true
	}
	return a.point.Compare(b.point) == 0 && a.inclusive == b.inclusive
}

// DisjointIntervals yields the maximal decomposition of query into runs
// where the active value set is constant, together with that set.
func (a *nonDisjointAdaptor[V, D]) DisjointIntervals(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return func(yield func(*valueSetSnapshot[V], Interval[D]) bool) {
		active := map[V]int{}
		points := a.sweep(query)

		cursor := query.Lower
		for _, p := range points {
			if compareLower(cursor, p.bound) < 0 {
				if runUpper, ok := NewInterval(cursor, complementOf(p.bound)); ok && len(active) > 0 {
					if !yield(newValueSetSnapshot(activeValues(active)), runUpper) {
						return
					}
				}
			}
			for _, v := range p.exit {
				active[v]--
				if active[v] <= 0 {
					delete(active, v)
				}
			}
			for _, v := range p.enter {
				active[v]++
			}
			cursor = p.bound
		}
		if compareLower(cursor, query.Upper) <= 0 && len(active) > 0 {
			if run, ok := NewInterval(cursor, query.Upper); ok {
				yield(newValueSetSnapshot(activeValues(active)), run)
			}
		}
	}
}

func activeValues[V comparable](active map[V]int) []V {
	out := make([]V, 0, len(active))
	for v := range active {
		out = append(out, v)
	}
	return out
}

// Gaps yields the maximal sub-intervals of query where no value is
// active at all.
func (a *nonDisjointAdaptor[V, D]) Gaps(query Interval[D]) iter.Seq[Interval[D]] {
	return func(yield func(Interval[D]) bool) {
		active := map[V]int{}
		points := a.sweep(query)

		cursor := query.Lower
		for _, p := range points {
			if len(active) == 0 && compareLower(cursor, p.bound) < 0 {
				if gap, ok := NewInterval(cursor, complementOf(p.bound)); ok {
					if !yield(gap) {
						return
					}
				}
			}
			for _, v := range p.exit {
				active[v]--
				if active[v] <= 0 {
					delete(active, v)
				}
			}
			for _, v := range p.enter {
				active[v]++
			}
			cursor = p.bound
		}
		if len(active) == 0 && compareLower(cursor, query.Upper) <= 0 {
			if gap, ok := NewInterval(cursor, query.Upper); ok {
				yield(gap)
			}
		}
	}
}

// InitialValues yields only the first disjoint run of query and the
// values active over it. DisjointIntervals already gives every later
// run's "start" values since each run's start IS the previous run's
// change point, so InitialValues here is exactly the first
// DisjointIntervals run.
func (a *nonDisjointAdaptor[V, D]) InitialValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return func(yield func(*valueSetSnapshot[V], Interval[D]) bool) {
		for snap, iv := range a.DisjointIntervals(query) {
			yield(snap, iv)
			return
		}
	}
}

// FinalValues yields the values active at query's last disjoint run.
func (a *nonDisjointAdaptor[V, D]) FinalValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return func(yield func(*valueSetSnapshot[V], Interval[D]) bool) {
		var lastSnap *valueSetSnapshot[V]
		var lastIv Interval[D]
		has := false
		for snap, iv := range a.DisjointIntervals(query) {
			lastSnap, lastIv, has = snap, iv, true
		}
		if has {
			yield(lastSnap, lastIv)
		}
	}
}

// SandwichedGaps yields every gap in query together with the values
// immediately bordering it on the left and right — used by Dict.FillGaps
// to decide what value(s) should fill an empty span given its neighbours.
//
// The original's sandwiched_gap is a dual left/right edge-set automaton
// (non_disjoint.h). This folds DisjointIntervals pairwise instead: a gap
// is the InnerComplement between two consecutive non-empty runs (or
// between query's own edge and the first/last run), with the bordering
// runs' value sets attached. Simpler to read, same output.
type SandwichedGap[V comparable, D Domain[D]] struct {
	Gap   Interval[D]
	Left  []V // values active immediately before the gap, nil if none (gap touches query's start)
	Right []V // values active immediately after the gap, nil if none (gap touches query's end)
}

func (a *nonDisjointAdaptor[V, D]) SandwichedGaps(query Interval[D]) iter.Seq[SandwichedGap[V, D]] {
	return func(yield func(SandwichedGap[V, D]) bool) {
		var prevSnap *valueSetSnapshot[V]
		var prevIv Interval[D]
		hasPrev := false

		for snap, iv := range a.DisjointIntervals(query) {
			if hasPrev {
				if gap, ok := prevIv.InnerComplement(iv); ok {
					sg := SandwichedGap[V, D]{Gap: gap, Left: prevSnap.Values(), Right: snap.Values()}
					if !yield(sg) {
						return
					}
				}
			} else if gap, ok := NewInterval(query.Lower, complementOf(iv.Lower)); ok {
				sg := SandwichedGap[V, D]{Gap: gap, Left: nil, Right: snap.Values()}
				if !yield(sg) {
					return
				}
			}
			prevSnap, prevIv, hasPrev = snap, iv, true
		}

		if hasPrev {
			if gap, ok := NewInterval(complementOf(prevIv.Upper), query.Upper); ok {
				sg := SandwichedGap[V, D]{Gap: gap, Left: prevSnap.Values(), Right: nil}
				yield(sg)
			}
		} else if !query.IsEmpty() {
			yield(SandwichedGap[V, D]{Gap: query, Left: nil, Right: nil})
		}
	}
}
