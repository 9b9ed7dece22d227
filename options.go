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

import "log/slog"

// AILOption is a functional option tuning the augmented interval list
// engine's run-decomposition heuristics.
type AILOption func(*ailTuning)

// WithMinRunLength sets the run length decompose() sizes runs by: it
// creates ceil(entries/n) runs, capped by WithMaxRuns, and splits the
// entries evenly across them.
//
// Example:
//
//	dict := NewDict[string, int, OrderedDomain[int]](
//	    WithEngine(EngineAIL),
//	    WithAILOptions(WithMinRunLength(128)),
//	)
func WithMinRunLength(n int) AILOption {
	return func(t *ailTuning) {
		if n > 0 {
			t.minRunLength = n
		}
	}
}

// WithMaxOverlapFraction sets the ratio of runs to live entries above
// which Insert, after appending a single-entry run, forces a full
// decompose.
func WithMaxOverlapFraction(f float64) AILOption {
	return func(t *ailTuning) {
		if f > 0 {
			t.maxOverlapFraction = f
		}
	}
}

// WithMinOverlapsToPromote sets how many overlapping entries in the most
// recent run trigger an immediate decompose on Insert, rather than
// appending a new single-entry run.
func WithMinOverlapsToPromote(n int) AILOption {
	return func(t *ailTuning) {
		if n > 0 {
			t.minOverlapsToPromote = n
		}
	}
}

// WithMaxRuns caps the number of runs decompose() will create.
func WithMaxRuns(n int) AILOption {
	return func(t *ailTuning) {
		if n > 0 {
			t.maxRuns = n
		}
	}
}

// EngineKind selects which of the three interchangeable storage engines
// backs a Dict's per-key content.
type EngineKind int

const (
	// EngineDisjoint forces overlapping values at the same interval into
	// a single merged value set per bucket. Cheapest for dictionaries
	// where keys rarely carry more than one simultaneous value.
	EngineDisjoint EngineKind = iota
	// EngineTree stores values in an augmented red-black tree, with
	// O(log n) insert/erase/query. Best default for large, frequently
	// mutated, heavily overlapping dictionaries.
	EngineTree
	// EngineAIL stores values in a small number of sorted runs with
	// prefix-max pruning. Favors query throughput over mutation cost.
	EngineAIL
)

// DictOptions configures the behavior of a Dict or BiDict.
type DictOptions struct {
	// Engine selects the storage engine. Default: EngineTree.
	Engine EngineKind

	// AILOptions tunes the AIL engine. Ignored unless Engine is EngineAIL.
	AILOptions []AILOption

	// Logger enables debug logging of Dict.Insert and Dict.Erase calls.
	// When nil, no logging is performed.
	Logger *slog.Logger
}

// DictOption is a functional option for configuring a Dict or BiDict.
type DictOption func(*DictOptions)

func defaultDictOptions() DictOptions {
	return DictOptions{Engine: EngineTree}
}

// WithEngine selects the storage engine backing the dictionary.
//
// Example:
//
//	dict := NewDict[string, int, OrderedDomain[int]](WithEngine(EngineAIL))
func WithEngine(kind EngineKind) DictOption {
	return func(opts *DictOptions) {
		opts.Engine = kind
	}
}

// WithAILOptions tunes the AIL engine's decomposition heuristics. Has no
// effect unless the dictionary is constructed WithEngine(EngineAIL).
func WithAILOptions(ailOpts ...AILOption) DictOption {
	return func(opts *DictOptions) {
		opts.AILOptions = append(opts.AILOptions, ailOpts...)
	}
}

// WithLogger sets a structured logger for dictionary diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	dict := NewDict[string, int, OrderedDomain[int]](WithLogger(logger))
func WithLogger(logger *slog.Logger) DictOption {
	return func(opts *DictOptions) {
		opts.Logger = logger
	}
}
