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

// FlattenPolicy resolves a run carrying zero or more simultaneous values
// down to at most one, for operations that require single-valued output
// (Dict.Flatten, JoinedTo). previous is the value that occupied the
// immediately preceding run, or the zero value with ok=false if this is
// the first run or the dictionary has no concept of a "previous" value
// here. Implementations must be pure: same inputs, same output.
type FlattenPolicy[V any] func(candidates []V, previous V, previousOK bool) (V, bool)

// DiscardPolicy drops any run with more than one simultaneous value,
// keeping it only when exactly one value is present. This is the
// conservative default: ambiguous runs simply vanish from the flattened
// result rather than guessing.
func DiscardPolicy[V any]() FlattenPolicy[V] {
	return func(candidates []V, _ V, _ bool) (V, bool) {
		if len(candidates) == 1 {
			return candidates[0], true
		}
		var zero V
		return zero, false
	}
}

// PreferStatusQuoPolicy keeps the previous run's value when it is still
// among the candidates (avoiding spurious "changes" caused only by a
// second value briefly overlapping); otherwise it returns whatever
// fallback returns for the same arguments, so the run is dropped exactly
// when fallback cannot resolve it.
func PreferStatusQuoPolicy[V comparable](fallback FlattenPolicy[V]) FlattenPolicy[V] {
	return func(candidates []V, previous V, previousOK bool) (V, bool) {
		if previousOK {
			for _, c := range candidates {
				if c == previous {
					return previous, true
				}
			}
		}
		return fallback(candidates, previous, previousOK)
	}
}
