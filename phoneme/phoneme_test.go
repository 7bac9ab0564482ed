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

package phoneme_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-japhon/phoneme"
	"github.com/ianlewis/go-japhon/trie"
)

func newDict(entries map[string]string) *phoneme.Dict {
	tr := trie.New()
	for k, v := range entries {
		tr.Insert([]rune(k), v)
	}
	return phoneme.NewDict(tr, tr.Len())
}

func TestDict_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries map[string]string
		input   string
		want    string
	}{
		{
			name:    "empty input",
			entries: map[string]string{"あ": "a"},
			input:   "",
			want:    "",
		},
		{
			name:    "single entry",
			entries: map[string]string{"こんにちは": "konnitiwa"},
			input:   "こんにちは",
			want:    "konnitiwa",
		},
		{
			name: "longest match wins",
			entries: map[string]string{
				"こ":     "ko",
				"こんにちは": "konnitiwa",
			},
			input: "こんにちは",
			want:  "konnitiwa",
		},
		{
			name: "sequential matches",
			entries: map[string]string{
				"り": "ri",
				"ん": "N",
				"ご": "go",
			},
			input: "りんご",
			want:  "riNgo",
		},
		{
			name:    "unmatched characters pass through",
			entries: map[string]string{"り": "ri"},
			input:   "りxり",
			want:    "rixri",
		},
		{
			name:    "no matches at all",
			entries: map[string]string{"あ": "a"},
			input:   "xyz",
			want:    "xyz",
		},
		{
			name:    "standalone topic particle",
			entries: map[string]string{"は": "ha"},
			input:   "は",
			want:    "wa",
		},
		{
			name: "particle after word",
			entries: map[string]string{
				"私": "watashi",
				"は": "ha",
			},
			input: "私は",
			want:  "watashiwa",
		},
		{
			name:    "trailing ha in matched span rewritten",
			entries: map[string]string{"こんにちは": "konnitiha"},
			input:   "こんにちは",
			want:    "konnitiwa",
		},
		{
			name:    "span ending in particle without ha reading unchanged",
			entries: map[string]string{"こんにちは": "konnitiwa"},
			input:   "こんにちは",
			want:    "konnitiwa",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			d := newDict(test.entries)
			if got := d.Convert(test.input); got != test.want {
				t.Errorf("Convert(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestDict_Convert_MalformedUTF8(t *testing.T) {
	t.Parallel()

	d := newDict(map[string]string{"り": "ri"})

	// A stray continuation byte passes through as a raw byte.
	got := d.Convert("り\xffり")
	want := "ri\xc3\xbfri"
	if got != want {
		t.Errorf("Convert = %q, want %q", got, want)
	}
}

func TestDict_ConvertDetailed(t *testing.T) {
	t.Parallel()

	d := newDict(map[string]string{
		"私":  "watashi",
		"好き": "suki",
	})

	got := d.ConvertDetailed("私はx好き")
	want := phoneme.Result{
		Phonemes: "watashiはxsuki",
		Matches: []phoneme.Match{
			{Original: "私", Phoneme: "watashi", Offset: 0},
			{Original: "好き", Phoneme: "suki", Offset: 7},
		},
		Unmatched: []string{"は", "x"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConvertDetailed (-want, +got):\n%s", diff)
	}
}

func TestDict_ConvertDetailed_Particle(t *testing.T) {
	t.Parallel()

	d := newDict(map[string]string{"は": "ha"})

	got := d.ConvertDetailed("は")
	want := phoneme.Result{
		Phonemes: "wa",
		Matches: []phoneme.Match{
			{Original: "は", Phoneme: "wa", Offset: 0},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConvertDetailed (-want, +got):\n%s", diff)
	}
}

func TestDict_Len(t *testing.T) {
	t.Parallel()

	d := newDict(map[string]string{"あ": "a", "い": "i"})
	if got := d.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
}

func BenchmarkDict_Convert(b *testing.B) {
	d := newDict(map[string]string{
		"こんにちは": "konnitiwa",
		"私":     "watashi",
		"は":     "ha",
		"リンゴ":   "riNgo",
		"が":     "ga",
		"好き":    "suki",
		"です":    "desu",
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Convert("私はリンゴが好きです。こんにちは。")
	}
}
