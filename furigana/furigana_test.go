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

package furigana_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-japhon/furigana"
	"github.com/ianlewis/go-japhon/trie"
)

func wordIndex(words ...string) trie.Index {
	tr := trie.New()
	for _, w := range words {
		tr.Insert([]rune(w), "")
	}
	return tr
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		words []string
		want  []furigana.Segment
	}{
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "no hints",
			text: "こんにちは",
			want: []furigana.Segment{
				{Kind: furigana.NormalText, Text: "こんにちは", Offset: 0},
			},
		},
		{
			name: "kana prefix excluded from hint",
			text: "その男「おとこ」が好き",
			want: []furigana.Segment{
				{Kind: furigana.NormalText, Text: "その", Offset: 0},
				{Kind: furigana.Hint, Text: "男", Reading: "おとこ", Offset: 6},
				{Kind: furigana.NormalText, Text: "が好き", Offset: 24},
			},
		},
		{
			name: "sandwiched kana retained",
			text: "昼ご飯「ひるごはん」",
			want: []furigana.Segment{
				{Kind: furigana.Hint, Text: "昼ご飯", Reading: "ひるごはん", Offset: 0},
			},
		},
		{
			name: "hint at start with trailing text",
			text: "健太「けんた」さん",
			want: []furigana.Segment{
				{Kind: furigana.Hint, Text: "健太", Reading: "けんた", Offset: 0},
				{Kind: furigana.NormalText, Text: "さん", Offset: 21},
			},
		},
		{
			name: "punctuation stops the backward scan",
			text: "です。男「おとこ」",
			want: []furigana.Segment{
				{Kind: furigana.NormalText, Text: "です。", Offset: 0},
				{Kind: furigana.Hint, Text: "男", Reading: "おとこ", Offset: 9},
			},
		},
		{
			name: "unterminated hint is plain text",
			text: "男「おとこ",
			want: []furigana.Segment{
				{Kind: furigana.NormalText, Text: "男「おとこ", Offset: 0},
			},
		},
		{
			name: "reading trimmed of ascii whitespace",
			text: "男「 おとこ 」",
			want: []furigana.Segment{
				{Kind: furigana.Hint, Text: "男", Reading: "おとこ", Offset: 0},
			},
		},
		{
			name: "empty reading voids the hint",
			text: "男「 」て",
			want: []furigana.Segment{
				{Kind: furigana.NormalText, Text: "て", Offset: 10},
			},
		},
		{
			name:  "compound absorbs hint",
			text:  "見「み」て",
			words: []string{"見て"},
			want: []furigana.Segment{
				{Kind: furigana.NormalText, Text: "みて", Offset: 0},
			},
		},
		{
			name:  "compound spanning multi-rune suffix",
			text:  "健太「けんた」さんです",
			words: []string{"健太さん"},
			want: []furigana.Segment{
				{Kind: furigana.NormalText, Text: "けんたさん", Offset: 0},
				{Kind: furigana.NormalText, Text: "です", Offset: 27},
			},
		},
		{
			name:  "no compound when kanji walk dead-ends",
			text:  "見「み」て",
			words: []string{"て"},
			want: []furigana.Segment{
				{Kind: furigana.Hint, Text: "見", Reading: "み", Offset: 0},
				{Kind: furigana.NormalText, Text: "て", Offset: 12},
			},
		},
		{
			name: "multiple hints",
			text: "健太「けんた」は男「おとこ」",
			want: []furigana.Segment{
				{Kind: furigana.Hint, Text: "健太", Reading: "けんた", Offset: 0},
				{Kind: furigana.NormalText, Text: "は", Offset: 21},
				{Kind: furigana.Hint, Text: "男", Reading: "おとこ", Offset: 24},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var words trie.Index
			if len(test.words) > 0 {
				words = wordIndex(test.words...)
			}

			got := furigana.Parse(test.text, words)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse(%q) (-want, +got):\n%s", test.text, diff)
			}
		})
	}
}
