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

import "fmt"

// Every Dict/BiDict operation is total: there is no input that returns an
// error. The types below are reserved for programmer-error conditions —
// invariant violations that indicate a caller bug, not a data problem —
// and are only ever raised as panics, recovered nowhere in this package.

// InconsistentBoundSemanticsError indicates an Interval was constructed,
// or passed to an engine, with a lower bound that sorts after its upper
// bound in a way IsEmpty cannot itself detect (e.g. a Bound whose
// `infinite` sentinel was hand-assembled outside NewLowerBound/
// NewUpperBound/the infinity constructors).
type InconsistentBoundSemanticsError struct {
	Interval fmt.Stringer
}

// Error implements the error interface.
func (e InconsistentBoundSemanticsError) Error() string {
	return fmt.Sprintf("inconsistent bound semantics on interval %s", e.Interval)
}

// MutationDuringIterationError indicates a Dict or BiDict was mutated
// (Insert/Erase/EraseAll) from within a callback driven by one of its own
// iter.Seq2 producers. Producers borrow the underlying engine read-only
// and are not restartable mid-iteration.
type MutationDuringIterationError struct {
	Operation string
}

// Error implements the error interface.
func (e MutationDuringIterationError) Error() string {
	return fmt.Sprintf("dict mutated via %s during an in-progress iteration", e.Operation)
}

// FlattenPolicyViolationError indicates a FlattenPolicy returned ok=true
// with a candidate value it was not given (i.e. not equal to previous and
// not present in candidates), breaking Flatten's contract that the
// resolved value must originate from the run it was asked to resolve.
type FlattenPolicyViolationError struct {
	Resolved any
}

// Error implements the error interface.
func (e FlattenPolicyViolationError) Error() string {
	return fmt.Sprintf("flatten policy returned a value %v absent from its candidates", e.Resolved)
}

var (
	_ error = InconsistentBoundSemanticsError{}
	_ error = MutationDuringIterationError{}
	_ error = FlattenPolicyViolationError{}
)
