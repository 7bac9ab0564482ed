// Copyright 2026 Ian Lewis
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

package trie_test

import (
	"testing"

	"github.com/ianlewis/go-japhon/trie"
)

func TestTrie_LongestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries map[string]string
		input   string
		start   int

		n     int
		value string
		ok    bool
	}{
		{
			name:    "no match",
			entries: map[string]string{"こんにちは": "konnitiwa"},
			input:   "さようなら",
			start:   0,
			ok:      false,
		},
		{
			name:    "exact match",
			entries: map[string]string{"こんにちは": "konnitiwa"},
			input:   "こんにちは",
			start:   0,
			n:       5,
			value:   "konnitiwa",
			ok:      true,
		},
		{
			name: "longest wins over shorter",
			entries: map[string]string{
				"こ":     "ko",
				"こん":    "koN",
				"こんにちは": "konnitiwa",
			},
			input: "こんにちは",
			start: 0,
			n:     5,
			value: "konnitiwa",
			ok:    true,
		},
		{
			name: "falls back to shorter when longer path dead-ends",
			entries: map[string]string{
				"こん":    "koN",
				"こんにちは": "konnitiwa",
			},
			input: "こんにちわん",
			start: 0,
			n:     2,
			value: "koN",
			ok:    true,
		},
		{
			name:    "match embedded in superstring",
			entries: map[string]string{"りんご": "riNgo"},
			input:   "赤いりんごです",
			start:   2,
			n:       3,
			value:   "riNgo",
			ok:      true,
		},
		{
			name:    "internal prefix node has no value",
			entries: map[string]string{"こんにちは": "konnitiwa"},
			input:   "こんに",
			start:   0,
			ok:      false,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tr := trie.New()
			for k, v := range test.entries {
				tr.Insert([]rune(k), v)
			}

			cps := []rune(test.input)
			n, value, ok := tr.LongestMatch(cps, test.start)
			if ok != test.ok || n != test.n || value != test.value {
				t.Errorf("LongestMatch = (%d, %q, %v), want (%d, %q, %v)",
					n, value, ok, test.n, test.value, test.ok)
			}
		})
	}
}

func TestTrie_Contains(t *testing.T) {
	t.Parallel()

	tr := trie.New()
	tr.Insert([]rune("昼ご飯"), "")
	tr.Insert([]rune("見て"), "")

	if !tr.Contains([]rune("昼ご飯")) {
		t.Error("Contains(昼ご飯) = false, want true")
	}
	// Internal prefix is not a complete entry.
	if tr.Contains([]rune("昼ご")) {
		t.Error("Contains(昼ご) = true, want false")
	}
	if tr.Contains([]rune("飯")) {
		t.Error("Contains(飯) = true, want false")
	}
}

func TestTrie_Duplicates(t *testing.T) {
	t.Parallel()

	tr := trie.New()
	tr.Insert([]rune("は"), "ha")
	tr.Insert([]rune("は"), "wa")
	tr.Insert([]rune("が"), "ga")

	if got := tr.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
	if got := tr.Duplicates(); got != 1 {
		t.Errorf("Duplicates = %d, want 1", got)
	}

	// Last write wins.
	_, value, ok := tr.LongestMatch([]rune("は"), 0)
	if !ok || value != "wa" {
		t.Errorf("LongestMatch(は) = (%q, %v), want (wa, true)", value, ok)
	}
}

func TestTrie_EmptyKey(t *testing.T) {
	t.Parallel()

	tr := trie.New()
	tr.Insert(nil, "root")

	w := tr.Walk()
	value, ok := w.Value()
	if !ok || value != "root" {
		t.Errorf("root Value = (%q, %v), want (root, true)", value, ok)
	}
}

func TestWalker_Fork(t *testing.T) {
	t.Parallel()

	tr := trie.New()
	tr.Insert([]rune("見て"), "")
	tr.Insert([]rune("見る"), "")

	w := tr.Walk()
	if !w.Step('見') {
		t.Fatal("Step(見) = false, want true")
	}

	// Forked cursors advance independently.
	f := w.Fork()
	if !f.Step('て') {
		t.Fatal("fork Step(て) = false, want true")
	}
	if _, ok := f.Value(); !ok {
		t.Error("fork Value ok = false, want true")
	}
	if !w.Step('る') {
		t.Fatal("Step(る) = false, want true")
	}
	if _, ok := w.Value(); !ok {
		t.Error("Value ok = false, want true")
	}

	// Invalid walkers stay invalid.
	if w.Step('る') {
		t.Error("Step past leaf = true, want false")
	}
	if w.Step('見') {
		t.Error("Step on invalid walker = true, want false")
	}
}
