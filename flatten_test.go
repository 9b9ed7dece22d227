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

import "testing"

func TestDiscardPolicy(t *testing.T) {
	p := DiscardPolicy[string]()
	if v, ok := p([]string{"a"}, "", false); !ok || v != "a" {
		t.Fatalf("single candidate should resolve, got %v %v", v, ok)
	}
	if _, ok := p([]string{"a", "b"}, "", false); ok {
		t.Fatalf("ambiguous candidates should be discarded")
	}
	if _, ok := p(nil, "", false); ok {
		t.Fatalf("no candidates should be discarded")
	}
}

func TestPreferStatusQuoPolicy(t *testing.T) {
	p := PreferStatusQuoPolicy(DiscardPolicy[string]())

	if v, ok := p([]string{"a", "b"}, "b", true); !ok || v != "b" {
		t.Fatalf("should keep previous value 'b' when still a candidate, got %v %v", v, ok)
	}
	if v, ok := p([]string{"a"}, "c", true); !ok || v != "a" {
		t.Fatalf("should fall back to discard policy when previous is absent, got %v %v", v, ok)
	}
	if _, ok := p([]string{"a", "b"}, "c", true); ok {
		t.Fatalf("should discard when previous absent and still ambiguous")
	}
}
