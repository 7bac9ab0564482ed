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

// Package phoneme implements greedy longest-match conversion of Japanese
// text to phoneme strings.
//
// Conversion is total: every input position is consumed exactly once,
// either by a dictionary match or as a single passed-through character, so
// the output is never empty unless the input is.
package phoneme

import (
	"strings"

	"github.com/ianlewis/go-japhon/codepoint"
	"github.com/ianlewis/go-japhon/trie"
)

// topicParticle is the hiragana は, whose reading as the grammatical topic
// particle is "wa" rather than "ha".
const topicParticle = 0x306F

// Match is one dictionary hit recorded by ConvertDetailed.
type Match struct {
	// Original is the matched input text.
	Original string

	// Phoneme is the phoneme string produced for the match.
	Phoneme string

	// Offset is the byte offset of the match in the input.
	Offset int
}

// Result is the detailed output of a conversion.
type Result struct {
	// Phonemes is the full converted string, identical to what Convert
	// returns for the same input.
	Phonemes string

	// Matches lists each dictionary hit in input order.
	Matches []Match

	// Unmatched lists each passed-through character in input order.
	Unmatched []string
}

// Dict is a phoneme dictionary: a trie of text to phoneme entries plus the
// conversion algorithms over it.
type Dict struct {
	index trie.Index
	count int
}

// NewDict returns a dictionary over idx. count is the number of entries,
// reported by Len.
func NewDict(idx trie.Index, count int) *Dict {
	return &Dict{
		index: idx,
		count: count,
	}
}

// Index returns the underlying trie. The segmenter uses it as the
// fallback source of known tokens.
func (d *Dict) Index() trie.Index {
	return d.index
}

// Len returns the number of dictionary entries.
func (d *Dict) Len() int {
	return d.count
}

// particle applies the topic-particle override to a matched span. A span
// that is は itself always reads "wa". A longer span ending in は has a
// trailing "ha" reading rewritten to "wa".
func particle(cps []rune, start, n int, phoneme string) string {
	if cps[start+n-1] != topicParticle {
		return phoneme
	}
	if n == 1 {
		return "wa"
	}
	if strings.HasSuffix(phoneme, "ha") {
		return phoneme[:len(phoneme)-2] + "wa"
	}
	return phoneme
}

// Convert converts text to phonemes by repeated longest match. Characters
// with no dictionary match pass through unchanged.
func (d *Dict) Convert(text string) string {
	cps, _ := codepoint.DecodeString(text)

	var b []byte
	pos := 0
	for pos < len(cps) {
		n, value, ok := d.index.LongestMatch(cps, pos)
		if ok {
			b = append(b, particle(cps, pos, n, value)...)
			pos += n
			continue
		}
		b = codepoint.Append(b, cps[pos])
		pos++
	}

	return string(b)
}

// ConvertDetailed performs the same walk as Convert, additionally
// recording every match with its byte offset and collecting passed-through
// characters.
func (d *Dict) ConvertDetailed(text string) Result {
	cps, offsets := codepoint.DecodeString(text)

	var result Result
	var b []byte
	pos := 0
	for pos < len(cps) {
		n, value, ok := d.index.LongestMatch(cps, pos)
		if ok {
			value = particle(cps, pos, n, value)
			result.Matches = append(result.Matches, Match{
				Original: text[offsets[pos]:offsets[pos+n]],
				Phoneme:  value,
				Offset:   offsets[pos],
			})
			b = append(b, value...)
			pos += n
			continue
		}

		var char []byte
		char = codepoint.Append(char, cps[pos])
		result.Unmatched = append(result.Unmatched, string(char))
		b = append(b, char...)
		pos++
	}

	result.Phonemes = string(b)
	return result
}
