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

// BiDict is a bidirectional interval-keyed dictionary: a forward
// Dict[K,V,D] and its inverse Dict[V,K,D], kept in lockstep so that
// every mutation through either direction is reflected in both. Every
// operation that would otherwise require re-deriving the inverse from
// scratch (JoinedTo in particular) instead inverts the already-computed
// forward result, which is cheaper and guarantees the two halves never
// drift apart.
type BiDict[K comparable, V comparable, D Domain[D]] struct {
	forward *Dict[K, V, D]
	inverse *Dict[V, K, D]
}

// NewBiDict creates an empty BiDict.
func NewBiDict[K comparable, V comparable, D Domain[D]](opts ...DictOption) *BiDict[K, V, D] {
	return &BiDict[K, V, D]{
		forward: NewDict[K, V, D](opts...),
		inverse: NewDict[V, K, D](opts...),
	}
}

// Forward returns the K -> V direction.
func (b *BiDict[K, V, D]) Forward() *Dict[K, V, D] { return b.forward }

// Inverse returns the V -> K direction.
func (b *BiDict[K, V, D]) Inverse() *Dict[V, K, D] { return b.inverse }

// Insert associates key with value over iv in both directions.
func (b *BiDict[K, V, D]) Insert(key K, value V, iv Interval[D]) {
	b.forward.Insert(key, value, iv)
	b.inverse.Insert(value, key, iv)
}

// Erase removes the association between key and value over iv in both
// directions.
func (b *BiDict[K, V, D]) Erase(key K, value V, iv Interval[D]) {
	b.forward.Erase(key, value, iv)
	b.inverse.Erase(value, key, iv)
}

// EraseAll removes every association for key over iv from both
// directions.
func (b *BiDict[K, V, D]) EraseAll(key K, iv Interval[D]) {
	var values []V
	for v := range b.forward.Find(key, iv) {
		values = append(values, v)
	}
	b.forward.EraseAll(key, iv)
	for _, v := range values {
		b.inverse.Erase(v, key, iv)
	}
}

// IsEmpty returns true if neither direction holds any bindings.
func (b *BiDict[K, V, D]) IsEmpty() bool {
	return b.forward.IsEmpty()
}

// Find yields the forward bindings for key overlapping query, each
// interval clipped to query.
func (b *BiDict[K, V, D]) Find(key K, query Interval[D]) iter.Seq2[V, Interval[D]] {
	return b.forward.Find(key, query)
}

// FindInverse yields the inverse bindings for value overlapping query,
// each interval clipped to query.
func (b *BiDict[K, V, D]) FindInverse(value V, query Interval[D]) iter.Seq2[K, Interval[D]] {
	return b.inverse.Find(value, query)
}

// Clone returns a deep copy safe for independent mutation.
func (b *BiDict[K, V, D]) Clone() *BiDict[K, V, D] {
	return &BiDict[K, V, D]{forward: b.forward.Clone(), inverse: b.inverse.Clone()}
}

// BiJoinedTo composes left (K <-> V) with mid (V <-> W) into a new
// BiDict (K <-> W). The inverse half is built by inverting the forward
// join result (JoinedTo(left.Forward(), mid.Forward(), ...)), not by
// separately composing left.Inverse() with mid.Inverse() — the two
// constructions are mathematically equivalent, but inverting the already
// -computed forward join is cheaper and keeps the pair trivially
// consistent by construction.
func BiJoinedTo[K comparable, V comparable, W comparable, D Domain[D]](
	left *BiDict[K, V, D], mid *BiDict[V, W, D], policy FlattenPolicy[W], opts ...DictOption,
) *BiDict[K, W, D] {
	forward := JoinedTo(left.forward, mid.forward, policy, opts...)
	return &BiDict[K, W, D]{
		forward: forward,
		inverse: forward.Invert(opts...),
	}
}

// Merge returns a new BiDict holding the union of b and other.
func (b *BiDict[K, V, D]) Merge(other *BiDict[K, V, D], opts ...DictOption) *BiDict[K, V, D] {
	forward := b.forward.Merge(other.forward, opts...)
	return &BiDict[K, V, D]{forward: forward, inverse: forward.Invert(opts...)}
}

// Subtract returns a new BiDict holding b's content minus other's.
func (b *BiDict[K, V, D]) Subtract(other *BiDict[K, V, D], opts ...DictOption) *BiDict[K, V, D] {
	forward := b.forward.Subtract(other.forward, opts...)
	return &BiDict[K, V, D]{forward: forward, inverse: forward.Invert(opts...)}
}

// Dump writes the forward direction's canonical textual representation.
// Use Inverse().Dump() for the reverse direction.
func (b *BiDict[K, V, D]) Dump() string {
	return b.forward.Dump()
}
