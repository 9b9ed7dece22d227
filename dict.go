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
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"strings"
)

// Dict is an interval-keyed associative dictionary: for each key K it
// holds zero or more (value V, interval D) bindings, generalizing the
// teacher's VersionIntervalSet (a single boolean-valued interval set per
// package) to arbitrary key and value types over an arbitrary ordered
// domain. Dict is storage-engine-agnostic; all of its operations are
// expressed purely in terms of the engine interface in engine.go, so any
// of the three engines (disjoint, tree, AIL) can back a Dict without the
// caller noticing beyond performance.
type Dict[K comparable, V comparable, D Domain[D]] struct {
	entries map[K]engine[V, D]
	opts    DictOptions
}

// NewDict creates an empty Dict. Default engine is EngineTree.
func NewDict[K comparable, V comparable, D Domain[D]](opts ...DictOption) *Dict[K, V, D] {
	o := defaultDictOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dict[K, V, D]{entries: map[K]engine[V, D]{}, opts: o}
}

// Triple is a single (key, value, interval) binding, the unit NewDictFrom
// builds a Dict out of.
type Triple[K comparable, V comparable, D Domain[D]] struct {
	Key      K
	Value    V
	Interval Interval[D]
}

// NewDictFrom builds a Dict from an ordered sequence of (key, value,
// interval) triples, inserting each one in order through the same
// per-value Insert path Dict.Insert uses, so overlapping or touching
// same-value triples for a key hull-merge exactly as they would via
// repeated Insert calls.
func NewDictFrom[K comparable, V comparable, D Domain[D]](triples []Triple[K, V, D], opts ...DictOption) *Dict[K, V, D] {
	d := NewDict[K, V, D](opts...)
	for _, t := range triples {
		d.Insert(t.Key, t.Value, t.Interval)
	}
	return d
}

func (d *Dict[K, V, D]) newEngine() engine[V, D] {
	switch d.opts.Engine {
	case EngineDisjoint:
		return newDisjointEngine[V, D]()
	case EngineAIL:
		return newAILEngine[V, D](d.opts.AILOptions...)
	default:
		return newTreeEngine[V, D]()
	}
}

func (d *Dict[K, V, D]) log(msg string, args ...any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Debug(msg, args...)
	}
}

// Insert associates value with key over iv.
func (d *Dict[K, V, D]) Insert(key K, value V, iv Interval[D]) {
	if iv.IsEmpty() {
		return
	}
	e, ok := d.entries[key]
	if !ok {
		e = d.newEngine()
		d.entries[key] = e
	}
	e.Insert(value, iv)
	d.log("insert", slog.Any("key", key), slog.Any("value", value), slog.String("interval", iv.String()))
}

// Erase removes the association between key and value over iv.
func (d *Dict[K, V, D]) Erase(key K, value V, iv Interval[D]) {
	e, ok := d.entries[key]
	if !ok || iv.IsEmpty() {
		return
	}
	e.Erase(value, iv, false)
	if e.IsEmpty() {
		delete(d.entries, key)
	}
	d.log("erase", slog.Any("key", key), slog.Any("value", value), slog.String("interval", iv.String()))
}

// EraseAll removes every value bound to key over iv.
func (d *Dict[K, V, D]) EraseAll(key K, iv Interval[D]) {
	e, ok := d.entries[key]
	if !ok || iv.IsEmpty() {
		return
	}
	var zero V
	e.Erase(zero, iv, true)
	if e.IsEmpty() {
		delete(d.entries, key)
	}
}

// IsEmpty returns true if the dictionary holds no bindings at all.
func (d *Dict[K, V, D]) IsEmpty() bool {
	return len(d.entries) == 0
}

// Keys yields every key currently holding at least one binding, in no
// particular order.
func (d *Dict[K, V, D]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range d.entries {
			if !yield(k) {
				return
			}
		}
	}
}

// Find yields, for every binding of key overlapping query, its value and
// the part of its interval that lies inside query.
func (d *Dict[K, V, D]) Find(key K, query Interval[D]) iter.Seq2[V, Interval[D]] {
	e, ok := d.entries[key]
	if !ok {
		return func(func(V, Interval[D]) bool) {}
	}
	return e.Intersecting(query)
}

// Intervals yields every (value, interval) binding for key.
func (d *Dict[K, V, D]) Intervals(key K) iter.Seq2[V, Interval[D]] {
	e, ok := d.entries[key]
	if !ok {
		return func(func(V, Interval[D]) bool) {}
	}
	return e.ValueIntervals()
}

// Clone returns a deep copy safe for independent mutation.
func (d *Dict[K, V, D]) Clone() *Dict[K, V, D] {
	clone := &Dict[K, V, D]{entries: make(map[K]engine[V, D], len(d.entries)), opts: d.opts}
	for k, e := range d.entries {
		clone.entries[k] = e.Clone()
	}
	return clone
}

// Subset returns a new Dict holding only the given keys.
func (d *Dict[K, V, D]) Subset(keys []K) *Dict[K, V, D] {
	out := &Dict[K, V, D]{entries: make(map[K]engine[V, D], len(keys)), opts: d.opts}
	for _, k := range keys {
		if e, ok := d.entries[k]; ok {
			out.entries[k] = e.Clone()
		}
	}
	return out
}

// Invert returns a new Dict[V,K,D] with keys and values swapped: every
// (key, value, interval) binding becomes (value, key, interval).
func (d *Dict[K, V, D]) Invert(opts ...DictOption) *Dict[V, K, D] {
	out := NewDict[V, K, D](opts...)
	for k, e := range d.entries {
		for v, iv := range e.ValueIntervals() {
			out.Insert(v, k, iv)
		}
	}
	return out
}

// JoinedTo composes left (K -> V) with mid (V -> W) into a new
// Dict (K -> W): for each key k, value v bound over iv in left, and
// each w bound to v over an overlapping span in mid, the composed Dict
// gets k -> w over the overlap. Where more than one w would apply to the
// same composed span, policy resolves it to at most one; runs policy
// cannot resolve are dropped. A nil policy defaults to DiscardPolicy.
func JoinedTo[K comparable, V comparable, W comparable, D Domain[D]](
	left *Dict[K, V, D], mid *Dict[V, W, D], policy FlattenPolicy[W], opts ...DictOption,
) *Dict[K, W, D] {
	if policy == nil {
		policy = DiscardPolicy[W]()
	}
	out := NewDict[K, W, D](opts...)
	for k, e := range left.entries {
		for v, iv := range e.ValueIntervals() {
			midEngine, ok := mid.entries[v]
			if !ok {
				continue
			}
			for snap, run := range newNonDisjointAdaptor[W, D](midEngine.Intersecting).DisjointIntervals(iv) {
				resolved, ok := policy(snap.Values(), resolveZero[W](), false)
				if !ok {
					continue
				}
				out.Insert(k, resolved, run)
			}
		}
	}
	return out
}

func resolveZero[W any]() W {
	var zero W
	return zero
}

// FillToStart extends the values of key's first disjoint run backward to
// start; no earlier content exists to collide with. Later runs are not
// extended, and nothing happens if the first run already extends to or
// past start. maxExtension, if non-nil, caps how far back the run may be
// extended regardless of how far start lies; a nil maxExtension extends
// all the way to start.
func (d *Dict[K, V, D]) FillToStart(key K, start Bound[D], maxExtension BoundStep[D]) {
	e, ok := d.entries[key]
	if !ok {
		return
	}
	full, _ := NewInterval(NegativeInfinityBound[D](), PositiveInfinityBound[D]())
	for snap, run := range e.InitialValues(full) {
		if compareLower(run.Lower, start) <= 0 {
			continue
		}
		from := start
		if maxExtension != nil {
			from = maxBound(start, maxExtension(run.Lower, false), compareLower[D])
		}
		extension, ok := NewInterval(from, complementOf(run.Lower))
		if !ok {
			continue
		}
		for _, v := range snap.Values() {
			e.Insert(v, extension)
		}
		break
	}
}

// FillToEnd extends the values of key's last disjoint run forward to
// end; earlier runs are not extended. maxExtension, if non-nil, caps how
// far forward the run may be extended regardless of how far end lies.
func (d *Dict[K, V, D]) FillToEnd(key K, end Bound[D], maxExtension BoundStep[D]) {
	e, ok := d.entries[key]
	if !ok {
		return
	}
	full, _ := NewInterval(NegativeInfinityBound[D](), PositiveInfinityBound[D]())
	var lastSnap *valueSetSnapshot[V]
	var lastRun Interval[D]
	has := false
	for snap, run := range e.FinalValues(full) {
		lastSnap, lastRun, has = snap, run, true
	}
	if !has || compareUpper(lastRun.Upper, end) >= 0 {
		return
	}
	to := end
	if maxExtension != nil {
		to = minBound(end, maxExtension(lastRun.Upper, true), compareUpper[D])
	}
	extension, ok := NewInterval(complementOf(lastRun.Upper), to)
	if !ok {
		return
	}
	for _, v := range lastSnap.Values() {
		e.Insert(v, extension)
	}
}

// FillGaps fills every gap in key's content that is sandwiched between
// two runs carrying the exact same single value, inserting that value
// across the gap. Gaps bordered by different values, or by more than
// one value on either side, are left empty. maxExtension, if non-nil,
// caps how far the bordering value may reach into the gap from each
// side; a gap narrower than the combined reach of both sides is filled
// entirely rather than left with an unfilled sliver in the middle,
// mirroring ExtendIntoGaps.
func (d *Dict[K, V, D]) FillGaps(key K, maxExtension BoundStep[D]) {
	e, ok := d.entries[key]
	if !ok {
		return
	}
	full, _ := NewInterval(NegativeInfinityBound[D](), PositiveInfinityBound[D]())
	var toFill []ValueInterval[V, D]
	for sg := range newNonDisjointAdaptor[V, D](e.Intersecting).SandwichedGaps(full) {
		if len(sg.Left) != 1 || len(sg.Right) != 1 || sg.Left[0] != sg.Right[0] {
			continue
		}
		value := sg.Left[0]
		if maxExtension == nil {
			toFill = append(toFill, ValueInterval[V, D]{Value: value, Interval: sg.Gap})
			continue
		}
		leftReach := maxExtension(sg.Gap.Lower, true)
		rightReach := maxExtension(sg.Gap.Upper, false)
		if compareLower(rightReach, leftReach) <= 0 {
			toFill = append(toFill, ValueInterval[V, D]{Value: value, Interval: sg.Gap})
			continue
		}
		if iv, ok := NewInterval(sg.Gap.Lower, leftReach); ok {
			toFill = append(toFill, ValueInterval[V, D]{Value: value, Interval: iv})
		}
		if iv, ok := NewInterval(rightReach, sg.Gap.Upper); ok {
			toFill = append(toFill, ValueInterval[V, D]{Value: value, Interval: iv})
		}
	}
	for _, vi := range toFill {
		e.Insert(vi.Value, vi.Interval)
	}
}

// FillGapsWith fills every gap in key's content (within query) with
// value, regardless of what borders the gap.
func (d *Dict[K, V, D]) FillGapsWith(key K, value V, query Interval[D]) {
	if query.IsEmpty() {
		return
	}
	e, ok := d.entries[key]
	if !ok {
		e = d.newEngine()
		d.entries[key] = e
	}
	var gaps []Interval[D]
	for g := range e.Gaps(query) {
		gaps = append(gaps, g)
	}
	for _, g := range gaps {
		e.Insert(value, g)
	}
}

// ExtendDirection selects which side(s) of a gap ExtendIntoGaps is
// allowed to fill from.
type ExtendDirection int

const (
	ExtendBoth ExtendDirection = iota
	ExtendForwardOnly
	ExtendBackwardOnly
)

// BoundStep computes the bound reached by stepping maxExtension away
// from point, in the given direction. Callers supply this because a
// generic Domain has no built-in notion of "distance"; an
// OrderedDomain[int] step might add a fixed delta, a TimeDomain step
// might add a time.Duration, etc.
type BoundStep[D Domain[D]] func(from Bound[D], forward bool) Bound[D]

// ExtendIntoGaps extends each value bordering a gap in key's content into
// that gap by up to step's reach (per side, subject to direction), never
// past the gap's other edge. If the
// gap is narrower than the combined reach of both borders (i.e. shorter
// than twice a single-sided step, when both sides extend), the gap is
// filled entirely rather than left with a sliver in the middle — per the
// resolution recorded in DESIGN.md.
func (d *Dict[K, V, D]) ExtendIntoGaps(key K, step BoundStep[D], direction ExtendDirection) {
	e, ok := d.entries[key]
	if !ok {
		return
	}
	full, _ := NewInterval(NegativeInfinityBound[D](), PositiveInfinityBound[D]())
	type fill struct {
		value V
		iv    Interval[D]
	}
	var fills []fill

	for sg := range newNonDisjointAdaptor[V, D](e.Intersecting).SandwichedGaps(full) {
		gap := sg.Gap
		var leftReach, rightReach Bound[D]
		haveLeft, haveRight := false, false

		if len(sg.Left) > 0 && direction != ExtendBackwardOnly {
			leftReach = step(gap.Lower, true)
			haveLeft = true
		}
		if len(sg.Right) > 0 && direction != ExtendForwardOnly {
			rightReach = step(gap.Upper, false)
			haveRight = true
		}

		switch {
		case haveLeft && haveRight && compareLower(rightReach, leftReach) <= 0:
			for _, v := range sg.Left {
				fills = append(fills, fill{value: v, iv: gap})
			}
		default:
			if haveLeft {
				if iv, ok := NewInterval(gap.Lower, minBound(leftReach, gap.Upper, compareUpper[D])); ok {
					for _, v := range sg.Left {
						fills = append(fills, fill{value: v, iv: iv})
					}
				}
			}
			if haveRight {
				if iv, ok := NewInterval(maxBound(rightReach, gap.Lower, compareLower[D]), gap.Upper); ok {
					for _, v := range sg.Right {
						fills = append(fills, fill{value: v, iv: iv})
					}
				}
			}
		}
	}

	for _, f := range fills {
		e.Insert(f.value, f.iv)
	}
}

// Flatten resolves every key's content down to at most one value per run,
// using policy (nil defaults to DiscardPolicy), returning a new Dict.
func (d *Dict[K, V, D]) Flatten(policy FlattenPolicy[V], opts ...DictOption) *Dict[K, V, D] {
	if policy == nil {
		policy = DiscardPolicy[V]()
	}
	out := NewDict[K, V, D](opts...)
	full, _ := NewInterval(NegativeInfinityBound[D](), PositiveInfinityBound[D]())
	for k, e := range d.entries {
		var previous V
		previousOK := false
		for snap, run := range e.DisjointIntervals(full) {
			resolved, ok := policy(snap.Values(), previous, previousOK)
			if !ok {
				previousOK = false
				continue
			}
			out.Insert(k, resolved, run)
			previous, previousOK = resolved, true
		}
	}
	return out
}

// Merge returns a new Dict holding the union of this Dict and other's
// content.
func (d *Dict[K, V, D]) Merge(other *Dict[K, V, D], opts ...DictOption) *Dict[K, V, D] {
	out := NewDict[K, V, D](opts...)
	full, _ := NewInterval(NegativeInfinityBound[D](), PositiveInfinityBound[D]())
	for k, e := range d.entries {
		out.entries[k] = e.Clone()
	}
	for k, e := range other.entries {
		merged, ok := out.entries[k]
		if !ok {
			out.entries[k] = e.Clone()
			continue
		}
		out.entries[k] = merged.MergedWith(e, full)
	}
	return out
}

// Subtract returns a new Dict holding this Dict's content minus other's.
func (d *Dict[K, V, D]) Subtract(other *Dict[K, V, D], opts ...DictOption) *Dict[K, V, D] {
	out := NewDict[K, V, D](opts...)
	full, _ := NewInterval(NegativeInfinityBound[D](), PositiveInfinityBound[D]())
	for k, e := range d.entries {
		if sub, ok := other.entries[k]; ok {
			result := e.SubtractBy(sub, full)
			if !result.IsEmpty() {
				out.entries[k] = result
			}
			continue
		}
		out.entries[k] = e.Clone()
	}
	return out
}

// Dump writes a canonical, deterministic textual representation of the
// dictionary's content to a string: one line per (key, value, interval)
// binding, sorted by key then interval then value. Used by tests as the
// single source of truth for content equality, since Dict equality is
// defined over observable content rather than internal engine layout.
func (d *Dict[K, V, D]) Dump() string {
	type row struct {
		key   K
		value V
		iv    Interval[D]
	}
	var rows []row
	for k, e := range d.entries {
		for v, iv := range e.ValueIntervals() {
			rows = append(rows, row{k, v, iv})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		ki, kj := fmt.Sprint(rows[i].key), fmt.Sprint(rows[j].key)
		if ki != kj {
			return ki < kj
		}
		if c := compareLower(rows[i].iv.Lower, rows[j].iv.Lower); c != 0 {
			return c < 0
		}
		return fmt.Sprint(rows[i].value) < fmt.Sprint(rows[j].value)
	})

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%v: %v -> %s\n", r.key, r.value, r.iv)
	}
	return b.String()
}
