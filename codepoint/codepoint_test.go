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

package codepoint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-japhon/codepoint"
)

func TestDecodeAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte

		cps     []rune
		offsets []int
	}{
		{
			name:    "empty",
			input:   []byte{},
			cps:     []rune{},
			offsets: []int{0},
		},
		{
			name:    "ascii",
			input:   []byte("abc"),
			cps:     []rune{'a', 'b', 'c'},
			offsets: []int{0, 1, 2, 3},
		},
		{
			name:    "hiragana",
			input:   []byte("こんにちは"),
			cps:     []rune{'こ', 'ん', 'に', 'ち', 'は'},
			offsets: []int{0, 3, 6, 9, 12, 15},
		},
		{
			name:    "mixed widths",
			input:   []byte("aΩ語\U0001F600"),
			cps:     []rune{'a', 'Ω', '語', 0x1F600},
			offsets: []int{0, 1, 3, 6, 10},
		},
		{
			name:  "malformed lead byte",
			input: []byte{0xFF, 'a'},
			// The bad byte passes through as a raw value.
			cps:     []rune{0xFF, 'a'},
			offsets: []int{0, 1, 2},
		},
		{
			name:  "truncated sequence",
			input: []byte{0xE3, 0x81},
			// The lead byte is passed through; the orphaned continuation
			// byte decodes as its own raw value.
			cps:     []rune{0xE3, 0x81},
			offsets: []int{0, 1, 2},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cps, offsets := codepoint.DecodeAll(test.input)
			if diff := cmp.Diff(test.cps, cps); diff != "" {
				t.Errorf("DecodeAll cps (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.offsets, offsets); diff != "" {
				t.Errorf("DecodeAll offsets (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestRoundTrip checks that re-encoding decoded input reproduces the
// original bytes for well-formed UTF-8.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"hello",
		"こんにちは",
		"私はリンゴが好きです",
		"昼ご飯「ひるごはん」を食べた。",
		"ASCII and 日本語 mixed\t\n",
		"\U0001F600\U0001F1EF\U0001F1F5",
	}

	for _, input := range inputs {
		cps, _ := codepoint.DecodeString(input)
		if got := codepoint.String(cps); got != input {
			t.Errorf("round trip %q: got %q", input, got)
		}
	}
}

func TestAppend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cp   rune
		want []byte
	}{
		{cp: 'a', want: []byte{'a'}},
		{cp: 0x7F, want: []byte{0x7F}},
		{cp: 0x80, want: []byte{0xC2, 0x80}},
		{cp: 'は', want: []byte{0xE3, 0x81, 0xAF}},
		{cp: 0xFFFF, want: []byte{0xEF, 0xBF, 0xBF}},
		{cp: 0x10000, want: []byte{0xF0, 0x90, 0x80, 0x80}},
		{cp: 0x10FFFF, want: []byte{0xF4, 0x8F, 0xBF, 0xBF}},
	}

	for _, test := range tests {
		test := test
		if got := codepoint.Append(nil, test.cp); string(got) != string(test.want) {
			t.Errorf("Append(%#x): got % x, want % x", test.cp, got, test.want)
		}
	}
}
