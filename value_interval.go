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

	"github.com/hashicorp/go-set/v3"
)

// ValueInterval is the atomic unit carried by the non-disjoint engines
// (the interval-tree and AIL engines): a single value bound to a single
// interval. A key may map to many overlapping ValueIntervals at once.
type ValueInterval[V comparable, D Domain[D]] struct {
	Value    V
	Interval Interval[D]
}

// String implements fmt.Stringer.
func (vi ValueInterval[V, D]) String() string {
	return fmt.Sprintf("%v -> %s", vi.Value, vi.Interval)
}

// DisjointValueSet is the atomic unit carried by the disjoint engine: a
// set of values all mapped to the exact same interval (the engine's
// buckets are disjoint from one another, but each bucket may hold several
// values that are indistinguishable over that span).
type DisjointValueSet[V comparable, D Domain[D]] struct {
	Interval Interval[D]
	Values   *set.Set[V]
}

// NewDisjointValueSet creates a DisjointValueSet over iv holding values.
func NewDisjointValueSet[V comparable, D Domain[D]](iv Interval[D], values ...V) DisjointValueSet[V, D] {
	return DisjointValueSet[V, D]{Interval: iv, Values: set.From(values)}
}

// String implements fmt.Stringer.
func (dvs DisjointValueSet[V, D]) String() string {
	return fmt.Sprintf("%s -> %s", dvs.Interval, dvs.Values)
}

// Expand yields one ValueInterval per member of dvs.Values, all sharing
// dvs.Interval — the inverse of the operation that merges same-interval
// ValueIntervals into a DisjointValueSet bucket.
func (dvs DisjointValueSet[V, D]) Expand() []ValueInterval[V, D] {
	out := make([]ValueInterval[V, D], 0, dvs.Values.Size())
	for _, v := range dvs.Values.Slice() {
		out = append(out, ValueInterval[V, D]{Value: v, Interval: dvs.Interval})
	}
	return out
}
