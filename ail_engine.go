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

// ailTuning holds the four construction parameters augmented_interval_list.h
// exposes, controlling when decomposition promotes an interval into a
// later run versus leaving it in its current one.
type ailTuning struct {
	minRunLength       int
	maxOverlapFraction float64
	minOverlapsToPromote int
	maxRuns            int
}

func defaultAILTuning() ailTuning {
	return ailTuning{
		minRunLength:          64,
		maxOverlapFraction:    0.2,
		minOverlapsToPromote:  8,
		maxRuns:               16,
	}
}

// ailEntry is a single stored ValueInterval plus a tombstone flag. Insert
// marks the entries it hull-merges dead instead of shifting the backing
// slice, and the next decomposition pass drops them. Erase does not leave
// tombstones: it rebuilds the runs from the surviving entries.
type ailEntry[V comparable, D Domain[D]] struct {
	value V
	iv    Interval[D]
	dead  bool
}

// ailRun is a maximal contiguous sorted slice of live entries (sorted by
// lower bound) together with a prefix-max of upper bounds, letting
// Intersecting prune a whole run once the remaining prefix-max can no
// longer reach the query.
type ailRun[V comparable, D Domain[D]] struct {
	entries   []ailEntry[V, D]
	prefixMax []Bound[D]
}

// ailEngine is the augmented interval list engine: entries partitioned
// across a small number of sorted runs, each scanned backward from its
// end until its prefix-max falls below the query, rebuilt wholesale once
// overlap density crosses the tuning thresholds. Grounded directly on
// original_source/include/interval_dict/augmented_interval_list.h.
type ailEngine[V comparable, D Domain[D]] struct {
	runs    []ailRun[V, D]
	tuning  ailTuning
	dirty   bool // reset to false by decompose; no code path sets it to true
	live    int
}

func newAILEngine[V comparable, D Domain[D]](opts ...AILOption) *ailEngine[V, D] {
	t := defaultAILTuning()
	for _, o := range opts {
		o(&t)
	}
	return &ailEngine[V, D]{tuning: t}
}

func (e *ailEngine[V, D]) IsEmpty() bool {
	return e.live == 0
}

func (e *ailEngine[V, D]) Clone() engine[V, D] {
	clone := &ailEngine[V, D]{tuning: e.tuning, dirty: e.dirty, live: e.live}
	clone.runs = make([]ailRun[V, D], len(e.runs))
	for i, r := range e.runs {
		clone.runs[i] = ailRun[V, D]{
			entries:   append([]ailEntry[V, D](nil), r.entries...),
			prefixMax: append([]Bound[D](nil), r.prefixMax...),
		}
	}
	return clone
}

// allLive returns every non-tombstoned entry across all runs.
func (e *ailEngine[V, D]) allLive() []ailEntry[V, D] {
	out := make([]ailEntry[V, D], 0, e.live)
	for _, r := range e.runs {
		for _, en := range r.entries {
			if !en.dead {
				out = append(out, en)
			}
		}
	}
	return out
}

// decompose rebuilds e.runs from scratch out of entries, partitioning
// them into at most tuning.maxRuns sorted runs. This is the engine's
// "concat and rebuild" path; the alternative path, appending a fresh
// single-entry run while overlap and run counts stay below the tuning
// thresholds, is implemented directly in Insert below.
func (e *ailEngine[V, D]) decompose(entries []ailEntry[V, D]) {
	sort.Slice(entries, func(i, j int) bool {
		return compareLower(entries[i].iv.Lower, entries[j].iv.Lower) < 0
	})

	if len(entries) == 0 {
		e.runs = nil
		e.dirty = false
		return
	}

	runCount := 1
	if e.tuning.minRunLength > 0 {
		if n := (len(entries) + e.tuning.minRunLength - 1) / e.tuning.minRunLength; n > runCount {
			runCount = n
		}
	}
	if runCount > e.tuning.maxRuns {
		runCount = e.tuning.maxRuns
	}

	e.runs = make([]ailRun[V, D], 0, runCount)
	chunkSize := (len(entries) + runCount - 1) / runCount
	for start := 0; start < len(entries); start += chunkSize {
		end := start + chunkSize
		if end > len(entries) {
			end = len(entries)
		}
		e.runs = append(e.runs, buildRun(entries[start:end]))
	}
	e.dirty = false
}

func buildRun[V comparable, D Domain[D]](entries []ailEntry[V, D]) ailRun[V, D] {
	run := ailRun[V, D]{
		entries:   append([]ailEntry[V, D](nil), entries...),
		prefixMax: make([]Bound[D], len(entries)),
	}
	for i, en := range run.entries {
		if i == 0 {
			run.prefixMax[i] = en.iv.Upper
		} else {
			run.prefixMax[i] = maxBound(run.prefixMax[i-1], en.iv.Upper, compareUpper[D])
		}
	}
	return run
}

// overlapCount estimates, for the purposes of the promotion heuristic,
// how many existing live entries overlap iv — a cheap linear scan
// capped at the last run, mirroring the original's "count overlaps in
// the most recent run before deciding whether to promote".
func (e *ailEngine[V, D]) overlapCount(iv Interval[D]) int {
	if len(e.runs) == 0 {
		return 0
	}
	last := e.runs[len(e.runs)-1]
	count := 0
	for _, en := range last.entries {
		if !en.dead && en.iv.Overlaps(iv) {
			count++
		}
	}
	return count
}

func (e *ailEngine[V, D]) Insert(value V, iv Interval[D]) {
	if iv.IsEmpty() {
		return
	}

	// Fold in any live same-value entry that touches or overlaps iv,
	// hulling them together, per augmented_interval_list.h's insert
	// algorithm. Repeat to a fixed point: hulling can bring the merged
	// interval into contact with a same-value entry that didn't touch the
	// original iv.
	hulled := iv
	for again := true; again; {
		again = false
		for ri := range e.runs {
			r := &e.runs[ri]
			for ei := range r.entries {
				en := &r.entries[ei]
				if en.dead || en.value != value {
					continue
				}
				if !en.iv.Overlaps(hulled) && !en.iv.Touches(hulled) {
					continue
				}
				hulled = en.iv.Hull(hulled)
				en.dead = true
				e.live--
				again = true
			}
		}
	}

	e.live++

	if len(e.runs) == 0 {
		e.runs = []ailRun[V, D]{buildRun([]ailEntry[V, D]{{value: value, iv: hulled}})}
		return
	}

	if e.overlapCount(hulled) >= e.tuning.minOverlapsToPromote || len(e.runs) >= e.tuning.maxRuns {
		entries := e.allLive()
		entries = append(entries, ailEntry[V, D]{value: value, iv: hulled})
		e.decompose(entries)
		return
	}

	// Append a fresh single-entry run rather than disturbing an existing
	// sorted run; decompose() will fold it back in once density demands.
	e.runs = append(e.runs, buildRun([]ailEntry[V, D]{{value: value, iv: hulled}}))
	if float64(len(e.runs)) > float64(e.live)*e.tuning.maxOverlapFraction && len(e.runs) > 1 {
		entries := e.allLive()
		e.decompose(entries)
	}
}

func (e *ailEngine[V, D]) Erase(value V, iv Interval[D], eraseAll bool) {
	if iv.IsEmpty() {
		return
	}
	var survivors []ailEntry[V, D]
	changed := false
	for _, r := range e.runs {
		for _, en := range r.entries {
			if en.dead {
				continue
			}
			ov, overlaps := en.iv.Intersect(iv)
			if !overlaps || (!eraseAll && en.value != value) {
				survivors = append(survivors, en)
				continue
			}
			changed = true
			e.live--
			if left, ok := en.iv.LeftSubtract(ov); ok {
				survivors = append(survivors, ailEntry[V, D]{value: en.value, iv: left})
				e.live++
			}
			if right, ok := en.iv.RightSubtract(ov); ok {
				survivors = append(survivors, ailEntry[V, D]{value: en.value, iv: right})
				e.live++
			}
		}
	}
	if changed {
		e.decompose(survivors)
	}
}

func (e *ailEngine[V, D]) ValueIntervals() iter.Seq2[V, Interval[D]] {
	return func(yield func(V, Interval[D]) bool) {
		entries := e.allLive()
		sort.Slice(entries, func(i, j int) bool {
			return compareLower(entries[i].iv.Lower, entries[j].iv.Lower) < 0
		})
		for _, en := range entries {
			if !yield(en.value, en.iv) {
				return
			}
		}
	}
}

// Intersecting walks each run from its end backward while the run's
// prefix-max can still reach query's lower edge, the pruning rule
// augmented_interval_list.h's AllIntervals iterator implements per run.
func (e *ailEngine[V, D]) Intersecting(query Interval[D]) iter.Seq2[V, Interval[D]] {
	return func(yield func(V, Interval[D]) bool) {
		for _, r := range e.runs {
			for i := len(r.entries) - 1; i >= 0; i-- {
				if compareUpper(r.prefixMax[i], query.Lower) < 0 {
					break
				}
				en := r.entries[i]
				if en.dead {
					continue
				}
				ov, ok := en.iv.Intersect(query)
				if !ok {
					continue
				}
				if !yield(en.value, ov) {
					return
				}
			}
		}
	}
}

func (e *ailEngine[V, D]) Gaps(query Interval[D]) iter.Seq[Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).Gaps(query)
}

func (e *ailEngine[V, D]) DisjointIntervals(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).DisjointIntervals(query)
}

func (e *ailEngine[V, D]) InitialValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).InitialValues(query)
}

func (e *ailEngine[V, D]) FinalValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).FinalValues(query)
}

func (e *ailEngine[V, D]) MergedWith(other engine[V, D], query Interval[D]) engine[V, D] {
	result := e.Clone().(*ailEngine[V, D])
	for v, iv := range other.ValueIntervals() {
		if ov, ok := iv.Intersect(query); ok {
			result.Insert(v, ov)
		}
	}
	result.decompose(result.allLive())
	return result
}

func (e *ailEngine[V, D]) SubtractBy(other engine[V, D], query Interval[D]) engine[V, D] {
	result := e.Clone().(*ailEngine[V, D])
	for v, iv := range other.ValueIntervals() {
		if ov, ok := iv.Intersect(query); ok {
			result.Erase(v, ov, false)
		}
	}
	return result
}

var _ engine[int, OrderedDomain[int]] = (*ailEngine[int, OrderedDomain[int]])(nil)
