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
	"io"
	"sort"

	"github.com/rodaine/table"
)

// TableReport writes a human-facing, column-aligned rendering of the
// dictionary's content to w: one row per (key, value, interval) binding,
// sorted by key then lower bound like Dump, but without Dump's tie-break
// by value. Unlike Dump, this is not a
// canonical representation — it exists for interactive/diagnostic use,
// in the spirit of the teacher's Reporter/DefaultReporter hierarchy
// (report.go), which likewise separates a machine-stable error string
// from a nicer interactive rendering.
func (d *Dict[K, V, D]) TableReport(w io.Writer) {
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
		return compareLower(rows[i].iv.Lower, rows[j].iv.Lower) < 0
	})

	t := table.New("Key", "Value", "Interval").WithWriter(w)
	for _, r := range rows {
		t.AddRow(r.key, r.value, r.iv.String())
	}
	t.Print()
}
