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
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyInsertionIsOrderIndependent checks that inserting the same
// set of (value, interval) bindings in any order produces the same
// observable content, for every engine.
func TestPropertyInsertionIsOrderIndependent(t *testing.T) {
	for _, kind := range allEngines {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				n := rapid.IntRange(1, 12).Draw(rt, "n")
				type binding struct {
					value string
					lo    int
					hi    int
				}
				var bindings []binding
				for i := 0; i < n; i++ {
					lo := rapid.IntRange(0, 50).Draw(rt, "lo")
					width := rapid.IntRange(1, 10).Draw(rt, "width")
					value := rapid.SampledFrom([]string{"a", "b", "c"}).Draw(rt, "value")
					bindings = append(bindings, binding{value: value, lo: lo, hi: lo + width})
				}

				order := rapid.Permutation(indexRange(len(bindings))).Draw(rt, "order")

				d1 := newTestDict(kind)
				for _, b := range bindings {
					d1.Insert("k", b.value, ivHalfOpen(b.lo, b.hi))
				}

				d2 := newTestDict(kind)
				for _, i := range order {
					b := bindings[i]
					d2.Insert("k", b.value, ivHalfOpen(b.lo, b.hi))
				}

				if d1.Dump() != d2.Dump() {
					rt.Fatalf("insertion order changed observable content:\n%s\nvs\n%s", d1.Dump(), d2.Dump())
				}
			})
		})
	}
}

func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// TestPropertyEraseIsInverseOfInsert checks that erasing exactly what was
// just inserted returns the dictionary to its prior state.
func TestPropertyEraseIsInverseOfInsert(t *testing.T) {
	for _, kind := range allEngines {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				d := newTestDict(kind)
				d.Insert("k", "base", ivHalfOpen(0, 100))
				before := d.Dump()

				lo := rapid.IntRange(0, 90).Draw(rt, "lo")
				width := rapid.IntRange(1, 10).Draw(rt, "width")
				value := rapid.SampledFrom([]string{"x", "y"}).Draw(rt, "value")
				iv := ivHalfOpen(lo, lo+width)

				d.Insert("k", value, iv)
				d.Erase("k", value, iv)

				if d.Dump() != before {
					rt.Fatalf("insert-then-erase of the same binding changed content:\nbefore=%s\nafter=%s", before, d.Dump())
				}
			})
		})
	}
}

// TestPropertyFlattenNeverIntroducesUnseenValues checks that every value
// Flatten emits was present among the original candidates at that point.
func TestPropertyFlattenNeverIntroducesUnseenValues(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := newTestDict(EngineTree)
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		known := map[string]bool{}
		for i := 0; i < n; i++ {
			lo := rapid.IntRange(0, 40).Draw(rt, "lo")
			width := rapid.IntRange(1, 10).Draw(rt, "width")
			value := rapid.SampledFrom([]string{"a", "b", "c"}).Draw(rt, "value")
			known[value] = true
			d.Insert("k", value, ivHalfOpen(lo, lo+width))
		}

		flat := d.Flatten(DiscardPolicy[string]())
		for v := range flat.Find("k", ivHalfOpen(0, 50)) {
			if !known[v] {
				rt.Fatalf("flatten produced value %q never inserted", v)
			}
		}
	})
}

func (k EngineKind) String() string {
	switch k {
	case EngineDisjoint:
		return "disjoint"
	case EngineTree:
		return "tree"
	case EngineAIL:
		return "ail"
	default:
		return "unknown"
	}
}
