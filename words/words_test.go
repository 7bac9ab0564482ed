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

package words_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-japhon/furigana"
	"github.com/ianlewis/go-japhon/trie"
	"github.com/ianlewis/go-japhon/words"
)

func newDict(list ...string) *words.Dict {
	d := words.NewDict()
	for _, w := range list {
		d.Add(w)
	}
	return d
}

func normal(texts ...string) []furigana.Segment {
	var segments []furigana.Segment
	for _, t := range texts {
		segments = append(segments, furigana.Segment{
			Kind: furigana.NormalText,
			Text: t,
		})
	}
	return segments
}

func TestDict_ReadWords(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"私",
		"",
		"  リンゴ  ",
		"\t",
		"好き",
	}, "\n")

	d := words.NewDict()
	n, err := d.ReadWords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadWords: %v", err)
	}
	if n != 3 {
		t.Errorf("ReadWords = %d, want 3", n)
	}
	if d.Len() != 3 {
		t.Errorf("Len = %d, want 3", d.Len())
	}

	for _, w := range []string{"私", "リンゴ", "好き"} {
		if !d.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}
	if d.Contains("です") {
		t.Error("Contains(です) = true, want false")
	}
}

func TestDict_Segment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		words    []string
		fallback map[string]string
		segments []furigana.Segment
		want     []string
	}{
		{
			name:     "empty",
			words:    []string{"私"},
			segments: nil,
			want:     nil,
		},
		{
			name:     "grammar between known words",
			words:    []string{"私", "リンゴ", "好き"},
			segments: normal("私はリンゴが好きです"),
			want:     []string{"私", "は", "リンゴ", "が", "好き", "です"},
		},
		{
			name:     "all grammar",
			words:    []string{"私"},
			segments: normal("ですます"),
			want:     []string{"ですます"},
		},
		{
			name:     "whitespace separates tokens",
			words:    []string{"私"},
			segments: normal("私 です ます"),
			want:     []string{"私", "です", "ます"},
		},
		{
			name:  "fallback supplies known tokens",
			words: []string{"私"},
			fallback: map[string]string{
				"好き": "suki",
			},
			segments: normal("私は好き"),
			want:     []string{"私", "は", "好き"},
		},
		{
			name:     "longest word wins",
			words:    []string{"昼", "昼ご飯"},
			segments: normal("昼ご飯です"),
			want:     []string{"昼ご飯", "です"},
		},
		{
			name:  "hint segments are atomic",
			words: []string{"好き"},
			segments: []furigana.Segment{
				{Kind: furigana.Hint, Text: "健太", Reading: "けんた"},
				{Kind: furigana.NormalText, Text: "は好き"},
			},
			want: []string{"けんた", "は", "好き"},
		},
		{
			name:     "multiple segments",
			words:    []string{"男"},
			segments: normal("その", "男"),
			want:     []string{"その", "男"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			d := newDict(test.words...)

			var fallback trie.Index
			if len(test.fallback) > 0 {
				tr := trie.New()
				for k, v := range test.fallback {
					tr.Insert([]rune(k), v)
				}
				fallback = tr
			}

			got := d.Segment(test.segments, fallback)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Segment (-want, +got):\n%s", diff)
			}
		})
	}
}
